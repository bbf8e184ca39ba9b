package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
)

var (
	layoutID string
)

var getLayoutCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a stored layout by ID",
	Long:  `Retrieve a stored layout and print it as JSON.`,
	RunE:  runGetLayout,
}

func init() {
	getLayoutCmd.Flags().StringVar(&layoutID, "id", "", "Layout ID (required)")
	_ = getLayoutCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

func runGetLayout(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDungeonClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.ToStruct(&v1alpha1.GetLayoutRequest{ID: layoutID})
	if err != nil {
		return err
	}

	resp, err := client.GetLayout(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get layout: %w", err)
	}

	return printJSON(resp)
}
