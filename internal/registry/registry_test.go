package registry

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-forager/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{} }
func (g *stubGame) Step(core.InputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", "Stub", func(Options) (Game, error) { return &stubGame{id: "zz_stub"}, nil })

	if !Exists("zz_stub") {
		t.Fatal("registered mode should exist")
	}
	g, err := Create("zz_stub", Options{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	list := List()
	if list[len(list)-1].ID != "zz_stub" || list[len(list)-1].Title != "Stub" {
		t.Errorf("List() = %+v, expected sorted entries ending with the stub", list)
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("missing", Options{}); err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Errorf("Create(missing) error = %v", err)
	}

	boom := errors.New("boom")
	Register("zz_failing", "Failing", func(Options) (Game, error) { return nil, boom })
	if _, err := Create("zz_failing", Options{}); !errors.Is(err, boom) {
		t.Errorf("factory error should be wrapped, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", "Dup", func(Options) (Game, error) { return &stubGame{}, nil })
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz_dup", "Dup", func(Options) (Game, error) { return &stubGame{}, nil })
}
