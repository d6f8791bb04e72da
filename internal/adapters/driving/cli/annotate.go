package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/services"
)

var (
	annotatePage int
	annotateX    float64
	annotateY    float64
	annotateText string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [doc-id]",
	Short: "Add an annotation and save a snapshot",
	Long: `Add one annotation to a document and save a snapshot to the configured
sink. Positions are document units from the top-left corner of the page.

Without --text the annotation text is read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().IntVar(&annotatePage, "page", 1, "1-based page number")
	annotateCmd.Flags().Float64Var(&annotateX, "x", 0, "horizontal position on the page")
	annotateCmd.Flags().Float64Var(&annotateY, "y", 0, "vertical position on the page")
	annotateCmd.Flags().StringVarP(&annotateText, "text", "t", "", "annotation text")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if stdioPrompter == nil {
		return errors.New("prompter not configured")
	}

	session, err := openSession(cmd, args[0], stdioPrompter)
	if err != nil {
		return err
	}
	defer session.Close()

	text := strings.TrimSpace(annotateText)
	if text == "" {
		answered := false
		stdioPrompter.Prompt(services.PromptAnnotationText, services.DefaultAnnotationText, func(t string, ok bool) {
			text, answered = t, ok
		})
		if !answered {
			return errors.New("annotation cancelled")
		}
	}

	pos := domain.Position{X: annotateX, Y: annotateY, PageIndex: annotatePage - 1}
	annotation, err := session.AddAnnotation(text, pos)
	if err != nil {
		return fmt.Errorf("failed to add annotation: %w", err)
	}
	cmd.Printf("Added annotation %s on page %d.\n", annotation.ID, annotatePage)

	if _, err := session.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
