package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/games/stars"
	"github.com/vovakirdan/starcatch/internal/platform/snapshot"
	"github.com/vovakirdan/starcatch/internal/session"
	"github.com/vovakirdan/starcatch/internal/storage"
)

var (
	flagTicks      int
	flagKeys       string
	flagWidth      float64
	flagHeight     float64
	flagPNG        string
	flagMetricsOut string
	flagUntilDeath bool
	flagAudioInSim bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Runs a session without a terminal UI at a fixed time step of 1/fps
seconds per tick, then prints a summary from the session journal.

Input is either a fixed set of held keys (--keys) or, by default, an
autopilot that heads for the nearest star and flees close enemies.

Examples:
  starcatch sim --seed 42
  starcatch sim --ticks 3600 --keys up,left
  starcatch sim --png final.png --metrics-out starcatch.prom`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagKeys, "keys", "", "Held keys for every tick, e.g. up,left (default: autopilot)")
	simCmd.Flags().Float64Var(&flagWidth, "width", 800, "Window width in world units")
	simCmd.Flags().Float64Var(&flagHeight, "height", 480, "Window height in world units")
	simCmd.Flags().StringVar(&flagPNG, "png", "", "Write the final frame as PNG")
	simCmd.Flags().StringVar(&flagMetricsOut, "metrics-out", "", "Write Prometheus metrics in textfile format")
	simCmd.Flags().BoolVar(&flagUntilDeath, "until-death", true, "Stop when the player is removed")
	simCmd.Flags().BoolVar(&flagAudioInSim, "audio", false, "Play sounds while simulating")
}

// parseKeys converts "up,left" into held actions.
func parseKeys(s string) ([]core.Action, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var actions []core.Action
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "up":
			actions = append(actions, core.ActionUp)
		case "down":
			actions = append(actions, core.ActionDown)
		case "left":
			actions = append(actions, core.ActionLeft)
		case "right":
			actions = append(actions, core.ActionRight)
		default:
			return nil, fmt.Errorf("unknown key %q (want up, down, left, right)", name)
		}
	}
	return actions, nil
}

// inputSource yields the input of the next tick.
type inputSource func(stars.Snapshot) core.InputFrame

func newInputSource(actions []core.Action) inputSource {
	if len(actions) == 0 {
		return stars.NewAutopilot().Next
	}
	return func(stars.Snapshot) core.InputFrame {
		in := core.NewInputFrame()
		for _, a := range actions {
			in.Set(a)
		}
		return in
	}
}

func runSim(cmd *cobra.Command, args []string) {
	if err := simulate(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func simulate(cmd *cobra.Command) error {
	actions, err := parseKeys(flagKeys)
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger(false)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	stars.SetConfigPath(flagConfig)
	game, cfg, err := createGame(stars.GameID)
	if err != nil {
		return err
	}
	sg, ok := game.(*stars.Game)
	if !ok {
		return fmt.Errorf("game %q cannot run headless", game.ID())
	}

	// Flags win, then the config window, then the flag defaults
	windowW, windowH := flagWidth, flagHeight
	if cfg.Window.Width > 0 && !cmd.Flags().Changed("width") {
		windowW = cfg.Window.Width
	}
	if cfg.Window.Height > 0 && !cmd.Flags().Changed("height") {
		windowH = cfg.Window.Height
	}
	rc := core.DefaultConfig()
	rc.WindowW, rc.WindowH = windowW, windowH
	rc.TickRate = flagFPS
	rc.Seed = flagSeed

	host, res := newHost(game, cfg, flagAudioInSim, logger)
	defer res.Close()

	if err := host.Start(rc); err != nil {
		return err
	}

	next := newInputSource(actions)
	dt := time.Second / time.Duration(flagFPS)
	for i := 0; i < flagTicks; i++ {
		in := next(sg.Snapshot())
		in.Elapsed = dt
		result := host.Step(in)
		if flagUntilDeath && result.State.GameOver {
			break
		}
	}
	host.End(session.ReasonTicks)

	if flagPNG != "" {
		opts := snapshot.DefaultOptions()
		opts.PlayerSize = cfg.Player.Size
		opts.EnemySize = cfg.Enemy.Size
		if err := snapshot.SavePNG(flagPNG, sg.Snapshot(), opts); err != nil {
			return err
		}
	}
	if flagMetricsOut != "" {
		if err := res.metrics.WriteTextfile(flagMetricsOut); err != nil {
			return err
		}
	}

	summary, err := host.Summary()
	if err != nil {
		// Journal disabled or unavailable: fall back to the live state
		logger.Warn("no journal summary", "error", err)
		printState(sg)
		return nil
	}
	printSummary(summary, sg)
	return nil
}

func printState(g *stars.Game) {
	st := g.State()
	fmt.Printf("Ticks:    %d\n", st.Tick)
	fmt.Printf("Stars:    %d of %d left\n", st.Stars, g.Spawned().Stars)
	fmt.Printf("Enemies:  %d\n", st.Enemies)
	fmt.Printf("Player:   %s\n", playerStatus(st))
}

func printSummary(s *storage.Summary, g *stars.Game) {
	st := g.State()
	fmt.Printf("Session:  %s\n", s.Session.ID)
	fmt.Printf("Seed:     %d\n", s.Session.Seed)
	fmt.Printf("Window:   %.0fx%.0f\n", s.Session.Width, s.Session.Height)
	fmt.Printf("Ticks:    %d\n", st.Tick)
	fmt.Printf("Stars:    %d collected, %d of %d left\n", s.Despawns["star"], st.Stars, s.Session.Stars)
	fmt.Printf("Enemies:  %d\n", s.Session.Enemies)
	fmt.Printf("Player:   %s\n", playerStatus(st))
	if s.Session.Ended {
		fmt.Printf("Ended:    %s at tick %d\n", s.Session.EndReason, s.Session.EndedTick)
	}

	fmt.Printf("Effects:  %d\n", s.Effects)
	categories := make([]string, 0, len(s.Sounds))
	for c := range s.Sounds {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("  %-10s %d\n", c, s.Sounds[c])
	}
}

func playerStatus(st core.GameState) string {
	if st.GameOver {
		return "removed"
	}
	return "alive"
}
