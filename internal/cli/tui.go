package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/randgraph/pkg/bench"
)

// =============================================================================
// BenchModel - Live benchmark progress
// =============================================================================

type benchProgressMsg bench.Event

type benchDoneMsg struct {
	report *bench.Report
	err    error
}

type sizeProgress struct {
	runs     int
	generate time.Duration
	search   time.Duration
}

type benchKeys struct {
	Quit key.Binding
}

func (k benchKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k benchKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

// benchModel is the bubbletea model behind "bench --tui". It shows overall
// progress and running per-size averages.
type benchModel struct {
	sizes     []int
	runs      int
	perSize   map[int]*sizeProgress
	completed int
	total     int
	start     time.Time

	bar     progress.Model
	spinner spinner.Model
	help    help.Model
	keys    benchKeys
	cancel  context.CancelFunc

	report *bench.Report
	err    error
	done   bool
}

func newBenchModel(sizes []int, runs int, cancel context.CancelFunc) benchModel {
	perSize := make(map[int]*sizeProgress, len(sizes))
	for _, s := range sizes {
		perSize[s] = &sizeProgress{}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner
	return benchModel{
		sizes:   sizes,
		runs:    runs,
		perSize: perSize,
		total:   len(sizes) * runs,
		start:   time.Now(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner: sp,
		help:    help.New(),
		keys: benchKeys{
			Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "abort")),
		},
		cancel: cancel,
	}
}

func (m benchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m benchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			m.err = context.Canceled
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-20, 10), 60)
	case benchProgressMsg:
		p := m.perSize[msg.Size]
		if p == nil {
			p = &sizeProgress{}
			m.perSize[msg.Size] = p
		}
		p.runs++
		p.generate += msg.Generate
		p.search += msg.Search
		m.completed = msg.Completed
	case benchDoneMsg:
		m.report, m.err, m.done = msg.report, msg.err, true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m benchModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.completed) / float64(m.total)
}

func (m benchModel) View() string {
	var b strings.Builder

	title := "Benchmarking"
	if m.done {
		title = "Benchmark finished"
	}
	b.WriteString(m.spinner.View() + " " + StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d runs · %s", m.completed, m.total, time.Since(m.start).Round(time.Second))))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.sizes))
	for _, s := range m.sizes {
		p := m.perSize[s]
		gen, search := "-", "-"
		if p.runs > 0 {
			n := time.Duration(p.runs)
			gen, search = formatSeconds(p.generate/n), formatSeconds(p.search/n)
		}
		rows = append(rows, []string{strconv.Itoa(s), fmt.Sprintf("%d/%d", p.runs, m.runs), gen, search})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Vertices", "Runs", "Generate avg", "BFS avg").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// runBenchTUI runs the benchmark behind a live progress view on out.
func runBenchTUI(ctx context.Context, cfg bench.Config, out io.Writer) (*bench.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newBenchModel(cfg.Sizes, cfg.Runs, cancel), tea.WithOutput(out), tea.WithContext(ctx))

	result := make(chan benchDoneMsg, 1)
	go func() {
		report, err := bench.Run(ctx, cfg, func(e bench.Event) {
			p.Send(benchProgressMsg(e))
		})
		msg := benchDoneMsg{report: report, err: err}
		result <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-result
		return nil, fmt.Errorf("benchmark view: %w", err)
	}
	res := <-result
	return res.report, res.err
}
