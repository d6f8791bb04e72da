package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin/internal/core/domain"
	"github.com/custodia-labs/margin/internal/core/ports/driven"
	"github.com/custodia-labs/margin/internal/core/ports/driving"
)

var pagesJSON bool

var pagesCmd = &cobra.Command{
	Use:   "pages [doc-id]",
	Short: "List a document's pages and annotations",
	Long: `Load a document and print its pages with the annotations placed on
each. Annotations from the newest saved snapshot are included.`,
	Args: cobra.ExactArgs(1),
	RunE: runPages,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List the documents the provider serves",
	RunE:  runDocuments,
}

func init() {
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0], stdioPrompter)
	if err != nil {
		return err
	}
	defer session.Close()

	doc := session.State().Document
	byPage := session.AnnotationsByPage()

	if pagesJSON {
		data, err := json.MarshalIndent(annotationService.Snapshot(doc.ID, doc), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s (%s)\n", doc.Title, doc.ID)
	cmd.Println()
	for i, page := range doc.Pages {
		cmd.Printf("  Page %d  %gx%g  %s\n", page.PageNumber, page.Width, page.Height, page.ImageURL)
		for _, a := range byPage[i] {
			cmd.Printf("      [%s] (%.0f, %.0f) %s\n", a.ID, a.Position.X, a.Position.Y, a.Text)
		}
	}
	return nil
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if documentProvider == nil {
		return errors.New("document provider not configured")
	}
	if _, ok := documentProvider.(driven.DocumentLister); !ok {
		return errors.New("the configured provider cannot list documents")
	}

	ids, err := listDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(ids) == 0 {
		cmd.Println("No documents found.")
		return nil
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}

// openSession restores saved annotations and loads a document synchronously.
func openSession(cmd *cobra.Command, documentID string, p driven.Prompter) (driving.DocumentSession, error) {
	if newSession == nil || annotationService == nil {
		return nil, errors.New("document services not configured")
	}

	ctx := cmd.Context()
	if _, err := restoreLatest(ctx, documentID); err != nil {
		return nil, err
	}

	session := newSession(p)
	if err := session.Open(ctx, documentID); err != nil {
		session.Close()
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("document %q not found", documentID)
		}
		return nil, fmt.Errorf("failed to load document %q: %w", documentID, err)
	}
	return session, nil
}
