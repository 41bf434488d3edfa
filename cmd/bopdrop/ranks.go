package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bopdrop/internal/config"
	"github.com/vovakirdan/bopdrop/internal/games/bopdrop"
	"github.com/vovakirdan/bopdrop/internal/platform/tui"
)

var flagRanksYAML bool

var ranksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "Print the rank table",
	Long: `Print the ranks of the loaded config (after the difficulty preset).

With --yaml the whole effective config is printed, ready to be edited and
passed back with --config.`,
	Args: cobra.NoArgs,
	RunE: runRanks,
}

func init() {
	ranksCmd.Flags().BoolVar(&flagRanksYAML, "yaml", false, "Print the effective config as YAML")
}

func runRanks(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadBopDrop(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyBopDropPreset(&cfg, preset)
	}

	if flagRanksYAML {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	cat, err := bopdrop.BuildCatalog(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("  %-4s  %-5s  %-10s  %-6s  %-6s  %s\n", "Rank", "Glyph", "Name", "Radius", "Points", "Drop")
	fmt.Printf("  %-4s  %-5s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "----", "------", "------", "----")
	for _, r := range cat.Ranks() {
		drop := ""
		if cat.IsDroppable(r.Index) {
			drop = "yes"
		}
		if cat.IsTerminal(r.Index) {
			drop = "bop"
		}
		glyph := tui.StyleFor(r.Color).Render(string(r.Glyph))
		fmt.Printf("  %-4d  %s      %-10s  %-6.0f  %-6d  %s\n", r.Index, glyph, r.Name, r.Radius, r.Points, drop)
	}
	return nil
}
