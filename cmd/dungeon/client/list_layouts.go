package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
)

var (
	listSeed int64
)

var listLayoutsCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts generated from a seed",
	RunE:  runListLayouts,
}

func init() {
	listLayoutsCmd.Flags().Int64Var(&listSeed, "seed", 0, "Seed (required)")
	_ = listLayoutsCmd.MarkFlagRequired("seed") // nolint:errcheck // safe to ignore in init
}

func runListLayouts(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createDungeonClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.ToStruct(&v1alpha1.ListLayoutsRequest{Seed: listSeed})
	if err != nil {
		return err
	}

	resp, err := client.ListLayouts(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list layouts: %w", err)
	}

	var out v1alpha1.ListLayoutsResponse
	if err := v1alpha1.FromStruct(resp, &out); err != nil {
		return err
	}

	fmt.Printf("Found %d layouts for seed %d\n", len(out.IDs), listSeed)
	for _, id := range out.IDs {
		fmt.Printf("  - %s\n", id)
	}
	return nil
}
