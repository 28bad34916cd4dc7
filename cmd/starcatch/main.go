// starcatch is a terminal arcade session: steer the player, collect the
// stars and avoid the roaming enemies.
//
// Usage:
//
//	starcatch list            - List available games
//	starcatch play [game]     - Play in the terminal (default: stars)
//	starcatch sim             - Run a headless simulation and print a summary
//	starcatch config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible sessions
//	--config <path>       - Custom config YAML
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/starcatch/internal/games/stars"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagJournal  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starcatch",
	Short: "Star Catch - collect stars, dodge enemies, in your terminal",
	Long: `Star Catch is a small real-time arcade session for the terminal.
The player moves inside a fixed window, collects stars and is removed
when an enemy gets too close.

Available commands:
  list     - Show all available games
  play     - Play in the terminal
  sim      - Run a headless simulation
  config   - Print the effective configuration

Examples:
  starcatch play
  starcatch play --seed 42 --log-file /tmp/starcatch.log
  starcatch sim --ticks 3600 --png final.png
  starcatch config > ~/.starcatch/configs/stars.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", ":memory:", "Session journal database (':memory:' keeps it in memory)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
