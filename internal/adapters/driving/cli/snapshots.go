package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin/internal/core/domain"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect saved annotation snapshots",
	Long:  `List and show snapshots kept by the sqlite sink.`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List snapshots for a document, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Print the newest snapshot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsShow,
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	if snapshotStore == nil {
		return errors.New("snapshot store not configured (use the sqlite sink)")
	}

	snaps, err := snapshotStore.List(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		cmd.Println("No snapshots found.")
		return nil
	}

	for i := range snaps {
		cmd.Printf("  %s  %d annotations\n", snaps[i].SavedAt.Format("2006-01-02 15:04:05"), snaps[i].TotalAnnotations)
	}
	return nil
}

func runSnapshotsShow(cmd *cobra.Command, args []string) error {
	if snapshotStore == nil {
		return errors.New("snapshot store not configured (use the sqlite sink)")
	}

	snap, err := snapshotStore.Latest(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no snapshot saved for %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
