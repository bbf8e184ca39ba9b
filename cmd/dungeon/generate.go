package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/geometry"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/layouts"
)

// runFlags are the generation overrides shared by generate and preview
type runFlags struct {
	roomCount int
	seed      int64
	policy    string
	firstRoom string
	rooms     []string
	corridors []string
	shop      string
	endRoom   string
	origin    []float64
	yaw       float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.roomCount, "rooms", 0, "Room target including the first room (catalog default when unset)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Run seed; 0 draws a random seed")
	cmd.Flags().StringVar(&f.policy, "entrance-policy", "", "Entrance choice: first or random")
	cmd.Flags().StringVar(&f.firstRoom, "first-room", "", "First room template ID")
	cmd.Flags().StringSliceVar(&f.rooms, "room-templates", nil, "Room template IDs")
	cmd.Flags().StringSliceVar(&f.corridors, "corridor-templates", nil, "Corridor template IDs")
	cmd.Flags().StringVar(&f.shop, "shop", "", "Shop template ID")
	cmd.Flags().StringVar(&f.endRoom, "end-room", "", "End room template ID")
	cmd.Flags().Float64SliceVar(&f.origin, "origin", nil, "First room position as x,y,z")
	cmd.Flags().Float64Var(&f.yaw, "yaw", 0, "First room yaw in degrees")
}

// apply overrides the catalog defaults with every flag the user set
func (f *runFlags) apply(cmd *cobra.Command, s dungeon.Settings) dungeon.Settings {
	changed := cmd.Flags().Changed
	if changed("rooms") {
		s.RoomCount = f.roomCount
	}
	if changed("seed") {
		s.Seed = f.seed
	}
	if changed("entrance-policy") {
		s.EntrancePolicy = dungeon.EntrancePolicy(f.policy)
	}
	if changed("first-room") {
		s.FirstRoom = f.firstRoom
	}
	if changed("room-templates") {
		s.Rooms = f.rooms
	}
	if changed("corridor-templates") {
		s.Corridors = f.corridors
	}
	if changed("shop") {
		s.Shop = f.shop
	}
	if changed("end-room") {
		s.EndRoom = f.endRoom
	}
	return s
}

func (f *runFlags) originPose() (*geometry.Pose, error) {
	if f.origin == nil && f.yaw == 0 {
		return nil, nil
	}

	var position mgl64.Vec3
	switch len(f.origin) {
	case 0:
	case 3:
		position = mgl64.Vec3{f.origin[0], f.origin[1], f.origin[2]}
	default:
		return nil, fmt.Errorf("--origin needs 3 values, got %d", len(f.origin))
	}

	pose := geometry.Yawed(position, f.yaw)
	return &pose, nil
}

// generate runs one generation in a fresh simulated scene
func (f *runFlags) generate(ctx context.Context, cmd *cobra.Command) (*entities.Layout, error) {
	gen, err := newGenerator()
	if err != nil {
		return nil, err
	}

	origin, err := f.originPose()
	if err != nil {
		return nil, err
	}

	scene, err := gen.scenes.NewScene(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	out, err := gen.orchestrator.Generate(ctx, &dungeon.GenerateInput{
		Scene:    scene,
		Settings: f.apply(cmd, gen.settings()),
		Origin:   origin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate dungeon: %w", err)
	}

	return out.Layout, nil
}

var (
	generateFlags runFlags
	outputPath    string
	saveTTL       time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon layout locally",
	Long: `Generate a dungeon in an in-memory scene and print the layout as JSON. With --redis the
layout is also stored.`,
	RunE: runGenerate,
}

func init() {
	generateFlags.register(generateCmd)
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the layout JSON to a file instead of stdout")
	generateCmd.Flags().DurationVar(&saveTTL, "ttl", layouts.DefaultTTL, "How long a stored layout is kept")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	layout, err := generateFlags.generate(ctx, cmd)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(ctx, false)
	if err != nil {
		return err
	}
	defer closeRepo()

	if repo != nil {
		saved, err := repo.Save(ctx, &layouts.SaveInput{Layout: layout, TTL: saveTTL})
		if err != nil {
			return fmt.Errorf("failed to save layout: %w", err)
		}
		log.Printf("Saved layout %s until %s", layout.ID, saved.ExpiresAt.Format(time.RFC3339))
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}

	log.Printf("Wrote layout %s (%d/%d rooms, %s) to %s",
		layout.ID, layout.RoomsPlaced, layout.TargetRooms, layout.HaltReason, outputPath)
	return nil
}
