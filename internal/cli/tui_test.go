package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/randgraph/pkg/bench"
)

func TestBenchModelProgress(t *testing.T) {
	m := newBenchModel([]int{10, 100}, 2, func() {})

	var model tea.Model = m
	model, _ = model.Update(benchProgressMsg{Size: 10, Run: 0, Completed: 1, Total: 4, Generate: 2 * time.Millisecond, Search: time.Millisecond})
	model, _ = model.Update(benchProgressMsg{Size: 10, Run: 1, Completed: 2, Total: 4, Generate: 4 * time.Millisecond, Search: 3 * time.Millisecond})

	bm := model.(benchModel)
	if bm.completed != 2 {
		t.Errorf("completed = %d, want 2", bm.completed)
	}
	if bm.percent() != 0.5 {
		t.Errorf("percent = %g, want 0.5", bm.percent())
	}
	p := bm.perSize[10]
	if p.runs != 2 || p.generate != 6*time.Millisecond || p.search != 4*time.Millisecond {
		t.Errorf("size 10 progress = %+v", *p)
	}

	view := bm.View()
	for _, want := range []string{"2/4 runs", "2/2", "0/2", "0.003000s", "0.002000s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBenchModelDone(t *testing.T) {
	m := newBenchModel([]int{10}, 1, func() {})
	report := &bench.Report{ID: "r1"}

	model, cmd := m.Update(benchDoneMsg{report: report})
	if cmd == nil {
		t.Fatal("done message should quit")
	}
	bm := model.(benchModel)
	if !bm.done || bm.report != report || bm.err != nil {
		t.Errorf("model after done = %+v", bm)
	}
	if !strings.Contains(bm.View(), "Benchmark finished") {
		t.Error("view should say the benchmark finished")
	}
}

func TestBenchModelQuitCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newBenchModel([]int{10}, 1, cancel)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if ctx.Err() == nil {
		t.Error("q should cancel the benchmark")
	}
	if bm := model.(benchModel); !errors.Is(bm.err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", bm.err)
	}
}
