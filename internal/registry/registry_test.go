package registry

import (
	"testing"

	"github.com/vovakirdan/bopdrop/internal/core"
)

type stubGame struct {
	id     string
	score  int
	closed *int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.State()} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{Score: g.score} }

type summarizingGame struct {
	stubGame
}

func (g *summarizingGame) Summary() core.RunSummary {
	return core.RunSummary{Score: g.score, Bops: 1}
}

type closingGame struct {
	stubGame
}

func (g *closingGame) Close() { *g.closed++ }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Error("Exists(zz_stub_a) = false, expected true")
	}
	if Exists("missing") {
		t.Error("Exists(missing) = true, expected false")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub_b" {
		t.Errorf("Create().ID() = %q, expected zz_stub_b", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "zz_stub_a" || info.ID == "zz_stub_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub "+info.ID)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "zz_stub_a" || ids[1] != "zz_stub_b" {
		t.Errorf("List() ids = %v, expected sorted stubs", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("Register() should panic on duplicate ID")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestRegisterClosesProbe(t *testing.T) {
	closed := 0
	Register("zz_closer", func() Game {
		return &closingGame{stubGame{id: "zz_closer", closed: &closed}}
	})
	if closed != 1 {
		t.Errorf("probe instance closed %d times, expected 1", closed)
	}
}

func TestSummarize(t *testing.T) {
	plain := &stubGame{score: 7}
	if got := Summarize(plain); got != (core.RunSummary{Score: 7}) {
		t.Errorf("Summarize(plain) = %+v", got)
	}

	rich := &summarizingGame{stubGame{score: 9}}
	if got := Summarize(rich); got.Bops != 1 || got.Score != 9 {
		t.Errorf("Summarize(rich) = %+v", got)
	}
}
