package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/handlers/dungeon/v1alpha1"
)

var (
	genRoomCount int
	genSeed      int64
	genPolicy    string
	genEndRoom   string
	genShop      string
	genTTL       int64
	genFull      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon on the server",
	Long:  `Ask the server to generate a dungeon. Unset flags keep the server's catalog defaults.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genRoomCount, "rooms", 0, "Room target including the first room")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Run seed; 0 draws a random seed")
	generateCmd.Flags().StringVar(&genPolicy, "entrance-policy", "", "Entrance choice: first or random")
	generateCmd.Flags().StringVar(&genShop, "shop", "", "Shop template ID")
	generateCmd.Flags().StringVar(&genEndRoom, "end-room", "", "End room template ID")
	generateCmd.Flags().Int64Var(&genTTL, "ttl-seconds", 0, "How long the server keeps the layout")
	generateCmd.Flags().BoolVar(&genFull, "json", false, "Print the full response as JSON")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createDungeonClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	in := &v1alpha1.GenerateDungeonRequest{
		EntrancePolicy: genPolicy,
		Shop:           genShop,
		EndRoom:        genEndRoom,
		TTLSeconds:     genTTL,
	}
	if cmd.Flags().Changed("rooms") {
		in.RoomCount = &genRoomCount
	}
	if cmd.Flags().Changed("seed") {
		in.Seed = &genSeed
	}

	req, err := v1alpha1.ToStruct(in)
	if err != nil {
		return err
	}

	resp, err := client.GenerateDungeon(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate dungeon: %w", err)
	}

	if genFull {
		return printJSON(resp)
	}

	var out v1alpha1.GenerateDungeonResponse
	if err := v1alpha1.FromStruct(resp, &out); err != nil {
		return err
	}

	layout := out.Layout
	fmt.Printf("Dungeon Generated\n\n")
	fmt.Printf("Layout ID: %s\n", layout.ID)
	fmt.Printf("Seed: %d\n", layout.Seed)
	fmt.Printf("Rooms: %d/%d\n", layout.RoomsPlaced, layout.TargetRooms)
	fmt.Printf("Halt Reason: %s\n", layout.HaltReason)
	fmt.Printf("Entrance Policy: %s\n", layout.EntrancePolicy)
	if out.Saved && out.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", out.ExpiresAt)
	}

	fmt.Printf("\nPieces:\n")
	for _, p := range layout.Pieces {
		fmt.Printf("  - %s %s (%s) at [%.1f %.1f %.1f]\n",
			p.ID, p.TemplateID, p.Kind, p.Position[0], p.Position[1], p.Position[2])
	}

	return nil
}
