package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/preview"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts"
)

var (
	previewFlags  runFlags
	previewFile   string
	previewLayout string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw a dungeon layout top-down in the terminal",
	Long: `Draw a layout in the terminal. The layout is read from --file, loaded from Redis with
--id, or generated on the spot. Press q or Esc to quit.`,
	RunE: runPreview,
}

func init() {
	previewFlags.register(previewCmd)
	previewCmd.Flags().StringVar(&previewFile, "file", "", "Layout JSON file written by generate")
	previewCmd.Flags().StringVar(&previewLayout, "id", "", "Stored layout ID (requires --redis)")
	previewCmd.MarkFlagsMutuallyExclusive("file", "id")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	layout, err := previewSource(ctx, cmd)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer screen.Fini()

	renderer, err := preview.NewRenderer(&preview.Config{Screen: screen})
	if err != nil {
		return err
	}

	return renderer.Run(ctx, layout)
}

func previewSource(ctx context.Context, cmd *cobra.Command) (*entities.Layout, error) {
	switch {
	case previewFile != "":
		data, err := os.ReadFile(previewFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout: %w", err)
		}
		var layout entities.Layout
		if err := json.Unmarshal(data, &layout); err != nil {
			return nil, fmt.Errorf("failed to decode layout: %w", err)
		}
		return &layout, nil

	case previewLayout != "":
		repo, closeRepo, err := openRepository(ctx, false)
		if err != nil {
			return nil, err
		}
		defer closeRepo()
		if repo == nil {
			return nil, fmt.Errorf("--id requires --redis")
		}

		out, err := repo.Get(ctx, &layouts.GetInput{ID: previewLayout})
		if err != nil {
			return nil, fmt.Errorf("failed to load layout: %w", err)
		}
		return out.Layout, nil

	default:
		return previewFlags.generate(ctx, cmd)
	}
}
