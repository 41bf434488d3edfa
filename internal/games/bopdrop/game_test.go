package bopdrop

import (
	"strings"
	"testing"

	"github.com/vovakirdan/bopdrop/internal/config"
	"github.com/vovakirdan/bopdrop/internal/core"
	bopcore "github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
	"github.com/vovakirdan/bopdrop/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     12345,
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime())
	t.Cleanup(g.Close)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// stepUntil steps with empty input until cond holds, up to limit ticks.
func stepUntil(g *Game, limit int, cond func() bool) bool {
	for range limit {
		if cond() {
			return true
		}
		g.Step(frame())
	}
	return cond()
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q is not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Bop Drop" {
		t.Errorf("Title() = %q, expected Bop Drop", g.Title())
	}
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(t)

	if g.Machine().Phase() != bopcore.PhaseMenu {
		t.Fatalf("phase = %v, expected menu", g.Machine().Phase())
	}

	// Drop input in the menu only starts the game
	g.Step(frame(core.ActionDrop))
	if g.Machine().Phase() != bopcore.PhaseReady {
		t.Errorf("phase = %v, expected ready", g.Machine().Phase())
	}
	if g.Machine().Drops() != 0 {
		t.Errorf("Drops() = %d, expected 0", g.Machine().Drops())
	}
}

func TestGameDropAndSettle(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionDrop))
	if g.Machine().Phase() != bopcore.PhaseDropping {
		t.Fatalf("phase = %v, expected dropping", g.Machine().Phase())
	}
	if g.Summary().Drops != 1 {
		t.Errorf("Summary().Drops = %d, expected 1", g.Summary().Drops)
	}

	// A second drop while the first is falling is ignored
	g.Step(frame(core.ActionDrop))
	if g.Machine().Drops() != 1 {
		t.Errorf("Drops() = %d after early drop, expected 1", g.Machine().Drops())
	}

	settled := stepUntil(g, 600, func() bool {
		return g.Machine().Phase() == bopcore.PhaseReady
	})
	if !settled {
		t.Fatalf("field did not settle, phase = %v", g.Machine().Phase())
	}
}

// maxPieceSpeed is the fastest moving piece on the field.
func maxPieceSpeed(g *Game) float64 {
	fastest := 0.0
	for _, b := range g.world.Bodies() {
		if !b.Static {
			fastest = max(fastest, b.Speed())
		}
	}
	return fastest
}

func TestGameSettlesAfterEveryDrop(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 12345} {
		rt := testRuntime()
		rt.Seed = seed
		g := New()
		g.Reset(rt)
		g.Step(frame(core.ActionConfirm))

		for i := range 12 {
			ready := stepUntil(g, 30*60, func() bool {
				return g.Machine().Phase() != bopcore.PhaseDropping
			})
			if !ready {
				t.Fatalf("seed %d: still dropping before drop %d, max speed %.3f, pieces %d",
					seed, i, maxPieceSpeed(g), len(g.Machine().Pieces()))
			}
			if g.Machine().Phase() != bopcore.PhaseReady {
				t.Fatalf("seed %d: phase = %v before drop %d, expected ready", seed, g.Machine().Phase(), i)
			}

			in := frame(core.ActionDrop)
			in.Point(g.layout.field.X + (i*11)%g.layout.field.W)
			g.Step(in)
			if g.Machine().Drops() != i+1 {
				t.Fatalf("seed %d: Drops() = %d, expected %d", seed, g.Machine().Drops(), i+1)
			}
		}
		g.Close()
	}
}

func TestGameAim(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	m := g.Machine()

	start := m.Pointer()
	g.Step(frame(core.ActionLeft))
	if got, expected := m.Pointer(), start-g.cfg.Drop.PointerStep; got != expected {
		t.Errorf("Pointer() after left = %v, expected %v", got, expected)
	}

	// Walking far right stops at the wall
	for range 100 {
		g.Step(frame(core.ActionRight))
	}
	settings := m.Settings()
	if got := m.Pointer(); got != settings.Width-settings.Wall {
		t.Errorf("Pointer() = %v, expected clamp at %v", got, settings.Width-settings.Wall)
	}

	// Mouse column maps into the field
	in := frame()
	in.Point(g.layout.field.X + g.layout.field.W/2)
	g.Step(in)
	center := settings.Width / 2
	if d := m.Pointer() - center; d < -g.layout.unitsPerCol || d > g.layout.unitsPerCol {
		t.Errorf("Pointer() = %v, expected near %v", m.Pointer(), center)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}

	g.Step(frame(core.ActionDrop))
	if g.Machine().Drops() != 0 {
		t.Error("drop should be ignored while paused")
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("expected unpaused state")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionDrop))

	g.Machine().GameOver()
	if !g.State().GameOver {
		t.Fatal("expected game over state")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Error("game should be running after restart")
	}
	if g.Machine().Phase() != bopcore.PhaseReady {
		t.Errorf("phase = %v, expected ready", g.Machine().Phase())
	}
	sum := g.Summary()
	if sum.Score != 0 || sum.Drops != 0 || sum.Bops != 0 {
		t.Errorf("Summary() after restart = %+v, expected zeroed run", sum)
	}
	if sum.Seed != testRuntime().Seed {
		t.Errorf("Summary().Seed = %d, expected %d", sum.Seed, testRuntime().Seed)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = frame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionConfirm)
		case i%40 == 5:
			inputs[i].Set(core.ActionDrop)
		case i%7 < 3:
			inputs[i].Set(core.ActionLeft)
		default:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Drops == 0 {
		t.Error("expected some drops in the scripted run")
	}
	if snap1.Tick != uint64(len(inputs)) {
		t.Errorf("Tick = %d, expected %d", snap1.Tick, len(inputs))
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	if !strings.Contains(screen.String(), "BOP DROP") {
		t.Error("menu should show the title box")
	}

	g.Step(frame(core.ActionConfirm))
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if !strings.ContainsRune(out, LoseLineCh) {
		t.Error("lose line should be drawn")
	}
	cur, _ := g.Machine().Catalog().Rank(g.Machine().Current())
	if !strings.ContainsRune(out, cur.Glyph) {
		t.Errorf("preview glyph %q should be drawn", cur.Glyph)
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New()
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 5
	g.Reset(rt)
	defer g.Close()

	screen := core.NewScreen(20, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	// Resizing recovers without resetting
	g.Resize(80, 30)
	g.Step(frame(core.ActionConfirm))
	if g.Machine().Phase() != bopcore.PhaseReady {
		t.Errorf("phase = %v, expected ready after resize", g.Machine().Phase())
	}
}

func TestLayout(t *testing.T) {
	l := newLayout(768, 960, 80, 24)
	if l.field.W != 33 || l.field.H != 21 {
		t.Errorf("field = %+v, expected 33x21", l.field)
	}
	if l.field.X != 23 || l.field.Y != 2 {
		t.Errorf("field origin = (%d,%d), expected (23,2)", l.field.X, l.field.Y)
	}

	x, ok := l.colToX(l.field.X)
	if !ok || x <= 0 || x >= l.unitsPerCol {
		t.Errorf("colToX(first column) = %v, %v", x, ok)
	}
	if got := l.col(x); got != l.field.X {
		t.Errorf("col(colToX(c)) = %d, expected %d", got, l.field.X)
	}
	if got := l.row(959); got != l.field.Bottom()-1 {
		t.Errorf("row(bottom) = %d, expected %d", got, l.field.Bottom()-1)
	}

	if !newLayout(768, 960, 2, 2).empty() {
		t.Error("tiny screen should give an empty layout")
	}
}

func TestStepsPerTick(t *testing.T) {
	tests := []struct {
		rate     int
		expected int
	}{
		{0, 1},
		{60, 1},
		{120, 1},
		{30, 2},
		{20, 3},
		{25, 2},
	}
	for _, tt := range tests {
		if got := stepsPerTick(tt.rate); got != tt.expected {
			t.Errorf("stepsPerTick(%d) = %d, expected %d", tt.rate, got, tt.expected)
		}
	}
}

func TestBuildFromConfig(t *testing.T) {
	cfg := config.DefaultBopDropConfig()

	cat, err := BuildCatalog(cfg)
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	if cat.Count() != len(cfg.Ranks) {
		t.Errorf("Count() = %d, expected %d", cat.Count(), len(cfg.Ranks))
	}
	if cat.Droppable() != cfg.Drop.Droppable {
		t.Errorf("Droppable() = %d, expected %d", cat.Droppable(), cfg.Drop.Droppable)
	}
	if r, _ := cat.Rank(0); r.Color != core.ColorRed {
		t.Errorf("rank 0 color = %v, expected red", r.Color)
	}

	cfg.Ranks[3].Radius = 1
	if _, err := BuildCatalog(cfg); err == nil {
		t.Error("BuildCatalog() should reject shrinking radii")
	}

	s := BuildSettings(config.DefaultBopDropConfig())
	if s != bopcore.DefaultSettings() {
		t.Errorf("BuildSettings(defaults) = %+v, expected %+v", s, bopcore.DefaultSettings())
	}

	opts := BuildPhysics(config.PhysicsConfig{Gravity: 2})
	if opts.Gravity != 2 || opts.PositionIterations == 0 {
		t.Errorf("BuildPhysics() = %+v", opts)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })

	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatalf("SetDifficultyPreset(hard) error = %v", err)
	}
	g := newTestGame(t)
	if g.Machine().Catalog().Droppable() != 6 {
		t.Errorf("hard Droppable() = %d, expected 6", g.Machine().Catalog().Droppable())
	}

	if err := SetDifficultyPreset("insane"); err == nil {
		t.Error("SetDifficultyPreset(insane) should fail")
	}
}
