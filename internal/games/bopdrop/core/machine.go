package core

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// ErrNoWorld is returned by Start when the machine has no physics world.
var ErrNoWorld = errors.New("physics world is not available")

// piece is the machine's side-table entry for a body it spawned.
type piece struct {
	Rank    int
	Scale   float64
	Preview bool
}

// Piece is a snapshot of one piece on the field, for rendering.
type Piece struct {
	ID      physics.ID
	Rank    int
	Pos     platformcore.Vec
	Radius  float64
	Angle   float64
	Scale   float64 // Render scale, above 1 while celebrating
	Static  bool
	Preview bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithSeed seeds the drop queue so games are reproducible.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.src = rand.NewSource(seed)
	}
}

// WithSource sets the random source used by the drop queue.
func WithSource(src rand.Source) Option {
	return func(m *Machine) {
		if src != nil {
			m.src = src
		}
	}
}

// WithScheduler shares a scheduler with the caller.
func WithScheduler(s *platformcore.Scheduler) Option {
	return func(m *Machine) {
		if s != nil {
			m.sched = s
		}
	}
}

// Machine runs the game rules on top of a World. It is long-lived: the
// per-game state lives in a Session that Start creates and Restart drops.
// A Machine is not safe for concurrent use; drive it from one goroutine.
type Machine struct {
	world World
	cat   *Catalog
	cfg   Settings
	log   *log.Logger
	sched *platformcore.Scheduler
	src   rand.Source

	events  bus
	pieces  *intmap.Map[physics.ID, piece]
	session *Session
	pointer float64

	settler    *Settler
	celebrator *Celebrator
	banner     platformcore.TaskID

	unhook        []func()
	reportedWorld bool
}

// NewMachine creates a machine in the menu phase. world may be nil, in which
// case Start reports ErrNoWorld. The walls are added right away.
func NewMachine(world World, cat *Catalog, cfg Settings, opts ...Option) *Machine {
	if cat == nil {
		cat = DefaultCatalog()
	}
	m := &Machine{
		world:   world,
		cat:     cat,
		cfg:     cfg,
		log:     log.New(io.Discard),
		sched:   platformcore.NewScheduler(),
		pieces:  intmap.New[physics.ID, piece](32),
		pointer: cfg.Width / 2,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.src == nil {
		m.src = rand.NewSource(time.Now().UnixNano())
	}

	m.settler = NewSettler(m.sched, cfg.SettleInterval, m.checkSettled)

	if world != nil {
		m.celebrator = NewCelebrator(m.sched, world, cfg.Celebration, cfg.Center(), m.setScale, m.forget)
		world.AddWalls(cfg.Width, cfg.Height, cfg.Wall)
		m.unhook = append(m.unhook,
			world.OnContact(m.handleContact),
			world.OnStep(m.afterStep),
		)
	}
	return m
}

// Close detaches the machine from its world and drops all subscribers and
// pending timers.
func (m *Machine) Close() {
	for _, fn := range m.unhook {
		fn()
	}
	m.unhook = nil
	m.settler.Cancel()
	if m.celebrator != nil {
		m.celebrator.Cancel()
	}
	m.sched.CancelAll()
	m.banner = 0
	m.events.close()
}

// Subscribe registers fn for every published event.
func (m *Machine) Subscribe(fn func(Event)) *Subscription {
	return m.events.subscribe(fn)
}

// Advance moves the machine's clock, running due settling checks and
// celebration frames.
func (m *Machine) Advance(dt time.Duration) {
	m.sched.Advance(dt)
}

// Start begins a game: Menu to Ready.
func (m *Machine) Start() error {
	if m.world == nil {
		if !m.reportedWorld {
			m.reportedWorld = true
			m.log.Error("cannot start game", "err", ErrNoWorld)
		}
		return ErrNoWorld
	}
	if m.Phase() != PhaseMenu {
		m.log.Debug("start ignored", "phase", m.Phase())
		return nil
	}

	m.settler.Cancel()
	s := newSession(NewLedger(m.cat), NewQueue(m.cat.Droppable(), m.src))
	m.session = s
	m.pointer = m.cfg.Width / 2
	m.SetPhase(PhaseReady)
	m.spawnPreview(m.pointer)

	m.log.Info("game started", "current", s.queue.Current(), "next", s.queue.Preview())
	m.events.publish(GameStarted{})
	return nil
}

// Drop releases the current piece at x. Ignored unless the phase is Ready.
func (m *Machine) Drop(x float64) {
	s := m.session
	if s == nil || s.phase != PhaseReady {
		m.log.Debug("drop ignored", "phase", m.Phase())
		return
	}

	x = m.cfg.ClampX(x)
	m.pointer = x
	rank := s.queue.Current()
	if _, err := m.Spawn(rank, platformcore.V(x, m.cfg.DropHeight)); err != nil {
		return
	}
	next := s.queue.Advance()
	m.removePreview()
	s.drops++
	m.SetPhase(PhaseDropping)
	m.settler.Begin()

	m.log.Debug("ball dropped", "x", x, "rank", rank, "next", next)
	m.events.publish(BallDropped{X: x, Rank: rank, Next: next})
}

// MovePointer records the player's horizontal aim. In Ready the preview
// follows it.
func (m *Machine) MovePointer(x float64) {
	m.pointer = m.cfg.ClampX(x)
	s := m.session
	if s == nil || s.phase != PhaseReady || s.preview == 0 {
		return
	}
	m.world.SetPosition(s.preview, platformcore.V(m.pointer, m.cfg.DropHeight))
}

// Pointer returns the clamped pointer x.
func (m *Machine) Pointer() float64 {
	return m.pointer
}

// GameOver ends the game. Only the first call from Ready or Dropping has an
// effect.
func (m *Machine) GameOver() {
	s := m.session
	if s == nil || !s.phase.Playing() {
		return
	}
	m.SetPhase(PhaseGameOver)
	m.settler.Cancel()
	m.world.Stop()

	score := s.ledger.Total()
	m.log.Info("game over", "score", score, "bops", s.bops, "drops", s.drops)
	m.events.publish(GameOver{FinalScore: score})
}

// Restart clears the field and starts a new game.
func (m *Machine) Restart() error {
	if m.world == nil {
		return m.Start()
	}

	m.settler.Cancel()
	if n := m.celebrator.Active(); n > 0 {
		m.log.Debug("celebrations cut short", "count", n)
	}
	m.celebrator.Cancel()
	m.sched.Cancel(m.banner)
	m.banner = 0

	m.pieces.Clear()
	m.world.Clear()
	m.world.AddWalls(m.cfg.Width, m.cfg.Height, m.cfg.Wall)
	m.world.Resume()
	m.session = nil

	m.log.Info("game restarted")
	m.events.publish(GameRestarted{})
	return m.Start()
}

// SetPhase moves to p. Unknown phases are logged and rejected.
func (m *Machine) SetPhase(p Phase) bool {
	if !p.Valid() {
		m.log.Error("rejecting phase change", "err", fmt.Errorf("unknown phase %q", string(p)))
		return false
	}
	if m.session == nil {
		if p != PhaseMenu {
			m.log.Debug("phase change ignored without a session", "phase", p)
			return false
		}
		return true
	}
	m.session.phase = p
	return true
}

// Spawn adds a dynamic piece of rank at pos with no motion.
func (m *Machine) Spawn(rank int, pos platformcore.Vec) (physics.ID, error) {
	if m.world == nil {
		return 0, ErrNoWorld
	}
	r, ok := m.cat.Rank(rank)
	if !ok {
		err := fmt.Errorf("spawn: %w %d", ErrInvalidRank, rank)
		m.log.Error("spawn failed", "err", err)
		return 0, err
	}

	id := m.world.AddCircle(pos, r.Radius, false)
	m.world.SetVelocity(id, platformcore.Vec{})
	m.world.SetAngularVelocity(id, 0)
	m.world.SetAngle(id, 0)
	m.pieces.Put(id, piece{Rank: rank, Scale: 1})
	if m.session != nil {
		m.session.noteRank(rank)
	}
	return id, nil
}

func (m *Machine) spawnPreview(x float64) {
	s := m.session
	r, ok := m.cat.Rank(s.queue.Current())
	if !ok {
		return
	}
	id := m.world.AddCircle(platformcore.V(x, m.cfg.DropHeight), r.Radius, true)
	m.pieces.Put(id, piece{Rank: r.Index, Scale: 1, Preview: true})
	s.preview = id
}

func (m *Machine) removePreview() {
	s := m.session
	if s.preview == 0 {
		return
	}
	m.remove(s.preview)
	s.preview = 0
}

func (m *Machine) remove(ids ...physics.ID) {
	m.world.Remove(ids...)
	for _, id := range ids {
		m.pieces.Del(id)
	}
}

// checkSettled is the settling poll. It returns true when polling should stop.
func (m *Machine) checkSettled() bool {
	s := m.session
	if s == nil || s.phase != PhaseDropping {
		return true
	}
	if !Settled(m.world.Bodies(), m.cfg.SettleThreshold) {
		return false
	}
	m.SetPhase(PhaseReady)
	m.spawnPreview(m.pointer)
	m.log.Debug("field settled", "score", s.ledger.Total())
	return true
}

func (m *Machine) afterStep() {
	ClampToFloor(m.world, m.cfg.Height)
}

func (m *Machine) contact(id physics.ID) (Contact, bool) {
	b, ok := m.world.Body(id)
	if !ok {
		return Contact{}, false
	}
	c := Contact{Pos: b.Pos, Radius: b.Radius, Static: b.Static}
	if p, ok := m.pieces.Get(id); ok && !p.Preview {
		c.Known = true
		c.Rank = p.Rank
	}
	return c, true
}

func (m *Machine) handleContact(a, b physics.ID) {
	s := m.session
	if s == nil || !s.phase.Playing() {
		return
	}
	// Either side may already be gone, consumed by an earlier pair this step.
	ca, okA := m.contact(a)
	cb, okB := m.contact(b)
	if !okA || !okB {
		return
	}

	v := Resolve(ca, cb, m.cat, m.cfg.LoseLine)
	switch v.Kind {
	case VerdictLose:
		m.GameOver()
	case VerdictMerge:
		m.merge(a, b, v)
	case VerdictMaxed:
		m.log.Debug("top rank contact", "rank", v.Rank)
	}
}

func (m *Machine) merge(a, b physics.ID, v Verdict) {
	s := m.session
	m.remove(a, b)
	score := s.ledger.RecordMerge(v.Rank)
	id, err := m.Spawn(v.NewRank, v.Pos)
	if err != nil {
		return
	}

	m.log.Debug("balls merged", "rank", v.Rank, "new_rank", v.NewRank, "score", score)
	m.events.publish(BallsMerged{Rank: v.Rank, NewRank: v.NewRank, Pos: v.Pos})

	if v.Bop {
		s.bops++
		m.log.Info("bop", "bops", s.bops, "score", score)
		m.events.publish(BopAchieved{Pos: v.Pos})
		m.showBanner()
		m.celebrator.Celebrate(id)
	}
}

func (m *Machine) showBanner() {
	m.sched.Cancel(m.banner)
	m.banner = m.sched.After(m.cfg.Celebration.Banner, func() { m.banner = 0 })
}

func (m *Machine) setScale(id physics.ID, scale float64) {
	if p, ok := m.pieces.Get(id); ok {
		p.Scale = scale
		m.pieces.Put(id, p)
	}
}

func (m *Machine) forget(id physics.ID) {
	m.pieces.Del(id)
}

// Phase returns the current phase; Menu when no game is running.
func (m *Machine) Phase() Phase {
	if m.session == nil {
		return PhaseMenu
	}
	return m.session.phase
}

// Session returns the running game, or nil in the menu.
func (m *Machine) Session() *Session {
	return m.session
}

// Catalog returns the rank catalog.
func (m *Machine) Catalog() *Catalog {
	return m.cat
}

// Settings returns the field settings.
func (m *Machine) Settings() Settings {
	return m.cfg
}

// Score returns the current total.
func (m *Machine) Score() int {
	if m.session == nil {
		return 0
	}
	return m.session.ledger.Total()
}

// Current returns the rank that drops next.
func (m *Machine) Current() int {
	if m.session == nil {
		return 0
	}
	return m.session.queue.Current()
}

// Next returns the on-deck rank.
func (m *Machine) Next() int {
	if m.session == nil {
		return 0
	}
	return m.session.queue.Preview()
}

// Bops returns the bop count of the running game.
func (m *Machine) Bops() int {
	if m.session == nil {
		return 0
	}
	return m.session.bops
}

// Drops returns the number of pieces dropped in the running game.
func (m *Machine) Drops() int {
	if m.session == nil {
		return 0
	}
	return m.session.drops
}

// Counts returns per-rank merge counts of the running game.
func (m *Machine) Counts() []int {
	if m.session == nil {
		return make([]int, m.cat.Count())
	}
	return m.session.ledger.Counts()
}

// Celebrating reports whether the bop banner is up.
func (m *Machine) Celebrating() bool {
	return m.banner != 0
}

// Pieces returns the pieces on the field in world order.
func (m *Machine) Pieces() []Piece {
	if m.world == nil {
		return nil
	}
	bodies := m.world.Bodies()
	out := make([]Piece, 0, len(bodies))
	for _, b := range bodies {
		p, ok := m.pieces.Get(b.ID)
		if !ok {
			continue
		}
		out = append(out, Piece{
			ID:      b.ID,
			Rank:    p.Rank,
			Pos:     b.Pos,
			Radius:  b.Radius,
			Angle:   b.Angle,
			Scale:   p.Scale,
			Static:  b.Static,
			Preview: p.Preview,
		})
	}
	return out
}
