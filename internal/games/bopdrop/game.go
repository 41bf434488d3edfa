// Package bopdrop adapts the Bop Drop rules to the terminal platform.
// Pieces fall into a pit, equal ranks merge into the next rank, and merging
// two of the largest rank scores a bop. The game ends when a piece resting
// above the lose line touches another.
package bopdrop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bopdrop/internal/config"
	"github.com/vovakirdan/bopdrop/internal/core"
	bopcore "github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
	"github.com/vovakirdan/bopdrop/internal/registry"
)

// ID is the registry and score-table identifier of the game.
const ID = "bopdrop"

// Package-level settings shared by every instance, set from CLI flags.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// SetLogger sets the logger handed to new games. nil restores the discard logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// flashTicks is how long an event message stays in the HUD.
const flashTicks = 90

// Game is the registry.Game implementation of Bop Drop.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.BopDropConfig
	log     *log.Logger

	world   *physics.World
	machine *bopcore.Machine
	sub     *bopcore.Subscription

	tick      uint64
	paused    bool
	substeps  int
	flash     string
	flashLeft int

	layout         layout
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Bop Drop game. Reset must be called before Step.
func New() *Game {
	return &Game{
		cfg:        config.DefaultBopDropConfig(),
		log:        logger,
		minScreenW: 24,
		minScreenH: 14,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bop Drop"
}

// Reset builds a fresh field and machine. The game waits in the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.Close()
	g.runtime = runtime
	g.log = logger

	cfg, err := config.LoadBopDrop(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultBopDropConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBopDropPreset(&cfg, difficultyPreset)
	}

	cat, err := BuildCatalog(cfg)
	if err != nil {
		g.log.Error("using default ranks", "err", err)
		cat = bopcore.DefaultCatalog()
	}
	g.cfg = cfg

	g.world = physics.NewWorld(BuildPhysics(cfg.Physics))
	g.machine = bopcore.NewMachine(g.world, cat, BuildSettings(cfg),
		bopcore.WithLogger(g.log),
		bopcore.WithSeed(runtime.Seed),
	)
	g.sub = g.machine.Subscribe(g.onEvent)

	g.tick = 0
	g.paused = false
	g.substeps = stepsPerTick(runtime.TickRate)
	g.flash, g.flashLeft = "", 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize recomputes the layout without touching the running game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
	g.layout = newLayout(g.cfg.Field.Width, g.cfg.Field.Height, w, h)
}

// Close releases the machine's hooks and timers.
func (g *Game) Close() {
	if g.sub != nil {
		g.sub.Cancel()
		g.sub = nil
	}
	if g.machine != nil {
		g.machine.Close()
	}
}

// Machine exposes the rules engine, mainly for tests and tools.
func (g *Game) Machine() *bopcore.Machine {
	return g.machine
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	m := g.machine
	phase := m.Phase()
	g.tick++

	switch {
	case in.Has(core.ActionRestart) && phase != bopcore.PhaseMenu:
		g.paused = false
		if err := m.Restart(); err != nil {
			g.log.Error("restart failed", "err", err)
		}
		return core.StepResult{State: g.State()}

	case phase == bopcore.PhaseMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionDrop) {
			if err := m.Start(); err != nil {
				g.log.Error("start failed", "err", err)
			}
		}
		return core.StepResult{State: g.State()}

	case phase == bopcore.PhaseGameOver:
		if in.Has(core.ActionConfirm) {
			if err := m.Restart(); err != nil {
				g.log.Error("restart failed", "err", err)
			}
		}
		g.tickFlash()
		m.Advance(g.runtime.TickDuration())
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleAim(in)
	if in.Has(core.ActionDrop) {
		m.Drop(m.Pointer())
	}

	for range g.substeps {
		g.world.Step()
	}
	m.Advance(g.runtime.TickDuration())
	g.tickFlash()

	return core.StepResult{State: g.State()}
}

// handleAim moves the pointer from the mouse column or the arrow keys.
func (g *Game) handleAim(in core.InputFrame) {
	m := g.machine
	if in.HasPointer {
		if x, ok := g.layout.colToX(in.PointerCol); ok {
			m.MovePointer(x)
		}
	}
	step := g.cfg.Drop.PointerStep
	if step <= 0 {
		step = g.layout.unitsPerCol
	}
	if in.Has(core.ActionLeft) {
		m.MovePointer(m.Pointer() - step)
	}
	if in.Has(core.ActionRight) {
		m.MovePointer(m.Pointer() + step)
	}
}

func (g *Game) onEvent(e bopcore.Event) {
	cat := g.machine.Catalog()
	switch ev := e.(type) {
	case bopcore.BallsMerged:
		r, _ := cat.Rank(ev.NewRank)
		g.setFlash(fmt.Sprintf("%s +%d", r.Name, cat.Points(ev.Rank)))
	case bopcore.BopAchieved:
		g.setFlash("BOP!")
	case bopcore.GameOver:
		g.setFlash(fmt.Sprintf("final %d", ev.FinalScore))
	case bopcore.GameStarted, bopcore.GameRestarted:
		g.setFlash("")
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashLeft = flashTicks
	if msg == "" {
		g.flashLeft = 0
	}
}

func (g *Game) tickFlash() {
	if g.flashLeft > 0 {
		g.flashLeft--
		if g.flashLeft == 0 {
			g.flash = ""
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.machine.Score(),
		GameOver: g.machine.Phase() == bopcore.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Summary describes the current run for the score store.
func (g *Game) Summary() core.RunSummary {
	sum := core.RunSummary{Seed: g.runtime.Seed}
	if g.machine == nil {
		return sum
	}
	sum.Score = g.machine.Score()
	if s := g.machine.Session(); s != nil {
		sum.Bops = s.Bops()
		sum.Drops = s.Drops()
		sum.Merges = s.Ledger().Merges()
		sum.MaxRank = s.MaxRank()
	}
	return sum
}

var (
	_ registry.Game       = (*Game)(nil)
	_ registry.Summarizer = (*Game)(nil)
	_ registry.Closer     = (*Game)(nil)
	_ registry.Resizer    = (*Game)(nil)
)

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
