package session

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/starcatch/internal/audio"
	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/games/stars"
	"github.com/vovakirdan/starcatch/internal/metrics"
	"github.com/vovakirdan/starcatch/internal/storage"
)

type fixture struct {
	game    *stars.Game
	host    *Host
	journal *storage.Store
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, tweak ...func(*config.StarsConfig)) fixture {
	t.Helper()
	cfg := config.DefaultStarsConfig()
	cfg.Audio.Enabled = false
	for _, fn := range tweak {
		fn(&cfg)
	}

	journal, err := storage.Open(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	m := metrics.New()
	player := audio.NewPlayer(cfg.Audio, audio.LoadBank(t.TempDir(), cfg.Sounds, nil), nil)
	game := stars.NewWithConfig(cfg)

	return fixture{
		game:    game,
		host:    NewHost(game, Options{Journal: journal, Audio: player, Metrics: m}),
		journal: journal,
		metrics: m,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	in.Elapsed = time.Second / 60
	return in
}

func TestHostStartJournalsSession(t *testing.T) {
	f := newFixture(t)
	rc := core.DefaultConfig()
	rc.Seed = 11

	if err := f.host.Start(rc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if f.host.SessionID() == "" {
		t.Fatal("expected a journal session ID")
	}

	sess, err := f.journal.Session(f.host.SessionID())
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if sess.Seed != 11 || sess.GameID != stars.GameID {
		t.Errorf("unexpected session %+v", sess)
	}
	if sess.Stars != f.game.Spawned().Stars || sess.Enemies != f.game.Spawned().Enemies {
		t.Errorf("session counts %d/%d do not match spawn %+v", sess.Stars, sess.Enemies, f.game.Spawned())
	}
}

func TestHostStartError(t *testing.T) {
	f := newFixture(t)
	rc := core.DefaultConfig()
	rc.WindowW = 0

	if err := f.host.Start(rc); !errors.Is(err, stars.ErrNoWindow) {
		t.Fatalf("Start() error = %v, want ErrNoWindow", err)
	}
	if f.host.SessionID() != "" {
		t.Error("a failed start must not open a journal session")
	}
}

func TestHostRecordsEffectsAndDeath(t *testing.T) {
	// Near-stationary enemies so the chase always ends
	f := newFixture(t, func(c *config.StarsConfig) { c.Enemy.Speed = 1 })
	rc := core.DefaultConfig()
	rc.Seed = 5
	if err := f.host.Start(rc); err != nil {
		t.Fatal(err)
	}

	dead := false
	var recorded int
	for i := 0; i < 600 && !dead; i++ {
		snap := f.game.Snapshot()
		res := f.host.Step(chase(snap.Player.Pos, snap.Enemies[0].Pos))
		recorded += len(res.Effects)
		dead = res.State.GameOver
	}
	if !dead {
		t.Fatal("player was never caught while chasing an enemy")
	}

	sum, err := f.host.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Effects != recorded {
		t.Errorf("journal has %d effects, host returned %d", sum.Effects, recorded)
	}
	if sum.Sounds["explosion"] != 1 || sum.Despawns["player"] != 1 {
		t.Errorf("expected one explosion and one player despawn, got %v / %v", sum.Sounds, sum.Despawns)
	}
	if !sum.Session.Ended || sum.Session.EndReason != ReasonPlayerRemoved {
		t.Errorf("session should end with %q, got %+v", ReasonPlayerRemoved, sum.Session)
	}

	if got := counterValue(t, f.metrics, "starcatch_ticks_total"); got != float64(f.game.State().Tick) {
		t.Errorf("ticks metric = %v, want %d", got, f.game.State().Tick)
	}
	if n, err := testutil.GatherAndCount(f.metrics.Registry(), "starcatch_audio_requests_total"); err != nil || n == 0 {
		t.Errorf("expected audio outcomes to be counted (series=%d, err=%v)", n, err)
	}
}

func TestHostStopsRecordingAfterDeath(t *testing.T) {
	// Every enemy is in kill range, so the player dies on the first tick
	f := newFixture(t, func(c *config.StarsConfig) { c.Enemy.KillRadius = 10000 })
	rc := core.DefaultConfig()
	rc.Seed = 3
	if err := f.host.Start(rc); err != nil {
		t.Fatal(err)
	}

	if res := f.host.Step(frame()); !res.State.GameOver {
		t.Fatal("expected the player to be removed on the first tick")
	}

	// Enemies keep bouncing at full speed
	impacts := 0
	for i := 0; i < 600; i++ {
		for _, e := range f.host.Step(frame()).Effects {
			if e.Category == "impact" {
				impacts++
			}
		}
	}
	if impacts == 0 {
		t.Fatal("expected enemies to keep bouncing after the player is removed")
	}

	sum, err := f.host.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Session.EndedTick != 1 || sum.Session.EndReason != ReasonPlayerRemoved {
		t.Errorf("session should end at tick 1 as %q, got %+v", ReasonPlayerRemoved, sum.Session)
	}
	if sum.LastTick > sum.Session.EndedTick {
		t.Errorf("journal has effects at tick %d after the session ended at %d", sum.LastTick, sum.Session.EndedTick)
	}
	if sum.Sounds["impact"] != 0 {
		t.Errorf("impacts after death were journaled: %v", sum.Sounds)
	}
	if got := counterValue(t, f.metrics, "starcatch_ticks_total"); got != 1 {
		t.Errorf("ticks metric = %v, want 1", got)
	}
}

func TestHostPausedFramesNotObserved(t *testing.T) {
	f := newFixture(t)
	if err := f.host.Start(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	f.host.Step(frame(core.ActionPause))
	for i := 0; i < 5; i++ {
		f.host.Step(frame())
	}
	if got := counterValue(t, f.metrics, "starcatch_ticks_total"); got != 0 {
		t.Errorf("ticks metric = %v while paused, want 0", got)
	}
}

func TestHostRestartEndsPrevious(t *testing.T) {
	f := newFixture(t)
	if err := f.host.Start(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	first := f.host.SessionID()
	f.host.Step(frame())

	if err := f.host.Start(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if f.host.SessionID() == first {
		t.Fatal("restart should open a new journal session")
	}

	sess, err := f.journal.Session(first)
	if err != nil {
		t.Fatal(err)
	}
	if !sess.Ended || sess.EndReason != ReasonRestart || sess.EndedTick != 1 {
		t.Errorf("previous session not closed as a restart: %+v", sess)
	}

	// Ending twice is harmless
	f.host.End(ReasonQuit)
	f.host.End(ReasonQuit)
}

func TestHostWithoutConsumers(t *testing.T) {
	h := NewHost(stars.NewWithConfig(config.DefaultStarsConfig()), Options{})
	if err := h.Start(core.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		h.Step(frame(core.ActionLeft))
	}
	if !h.ToggleMute() {
		t.Error("a host without audio reports muted")
	}
	if _, err := h.Summary(); !errors.Is(err, storage.ErrUnknownSession) {
		t.Errorf("Summary() error = %v, want ErrUnknownSession", err)
	}
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func chase(from, to mgl64.Vec2) core.InputFrame {
	var actions []core.Action
	d := to.Sub(from)
	if d[0] < -1 {
		actions = append(actions, core.ActionLeft)
	} else if d[0] > 1 {
		actions = append(actions, core.ActionRight)
	}
	if d[1] < -1 {
		actions = append(actions, core.ActionDown)
	} else if d[1] > 1 {
		actions = append(actions, core.ActionUp)
	}
	return frame(actions...)
}
