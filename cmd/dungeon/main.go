// Package main is the entry point for the dungeon generator
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/cmd/dungeon/client"
)

var (
	catalogPath string
	redisAddrs  string
)

var rootCmd = &cobra.Command{
	Use:   "rpg-dungeon",
	Short: "Procedural dungeon generator",
	Long: `rpg-dungeon assembles dungeons from room and corridor templates by chaining their
connection points until the room target is reached. Layouts can be generated locally,
previewed in the terminal, or served over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Template catalog YAML file (embedded default catalog when empty)")
	rootCmd.PersistentFlags().StringVar(&redisAddrs, "redis", "",
		"Comma separated Redis addresses for layout storage")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
