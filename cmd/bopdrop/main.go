// bopdrop is a terminal merge-drop puzzle: drop balls into a pit, merge
// equal ranks, and bop two of the largest.
//
// Usage:
//
//	bopdrop play             - Play in this terminal
//	bopdrop scores           - Print the high scores
//	bopdrop board            - Browse scores and recent runs
//	bopdrop ranks            - Print the rank table
//	bopdrop serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.bopdrop/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--difficulty <name> - easy, normal or hard
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bopdrop/internal/config"
	"github.com/vovakirdan/bopdrop/internal/games/bopdrop"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// dotenvErr loads .env during variable initialization, before the init
// functions read flag defaults from the environment.
var dotenvErr = config.LoadDotEnv()

func main() {
	if dotenvErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", dotenvErr)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bopdrop",
	Short: "Bop Drop - a merge-drop puzzle in your terminal",
	Long: `Bop Drop drops balls into a pit. Two balls of the same rank merge into
the next rank; merging two of the largest rank is a bop. The game ends when
a ball resting above the line touches another.

Available commands:
  play     - Play in this terminal
  scores   - Print the high scores
  board    - Browse scores and recent runs
  ranks    - Print the rank table
  serve    - Start SSH server for remote play

Flag defaults can come from the environment or a .env file:
  BOPDROP_DB, BOPDROP_CONFIG, BOPDROP_LOG_LEVEL

Examples:
  bopdrop play
  bopdrop play --difficulty hard --seed 42
  bopdrop ranks --yaml > my-bopdrop.yaml
  bopdrop serve --ssh :2222`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		bopdrop.SetConfigPath(flagConfig)
		return bopdrop.SetDifficultyPreset(flagDifficulty)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db",
		config.Env(config.EnvDB, "~/.bopdrop/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config",
		config.Env(config.EnvConfig, ""), "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level",
		config.Env(config.EnvLogLevel, "info"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(ranksCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bopdrop",
	})
	logger.SetLevel(level)
	return logger, nil
}

// openLogFile opens ~/.bopdrop/bopdrop.log for appending. The terminal
// belongs to the TUI while playing.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".bopdrop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "bopdrop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
