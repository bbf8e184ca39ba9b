package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
)

var (
	deleteID string
)

var deleteLayoutCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a stored layout",
	RunE:  runDeleteLayout,
}

func init() {
	deleteLayoutCmd.Flags().StringVar(&deleteID, "id", "", "Layout ID (required)")
	_ = deleteLayoutCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

func runDeleteLayout(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDungeonClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.ToStruct(&v1alpha1.DeleteLayoutRequest{ID: deleteID})
	if err != nil {
		return err
	}

	if _, err := client.DeleteLayout(ctx, req); err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	fmt.Printf("Deleted layout %s\n", deleteID)
	return nil
}
