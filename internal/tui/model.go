package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"idiomprobe/internal/domain"
)

// Model is the Bubble Tea model for browsing per-group metric results.
type Model struct {
	runName  string
	groups   []domain.GroupMetrics
	summary  domain.WordSummary
	viewport viewport.Model
	cursor   int
	ready    bool
}

// New creates a browser over the word-mode run results.
func New(runName string, groups []domain.GroupMetrics, summary domain.WordSummary) Model {
	vp := viewport.New(0, 0)
	return Model{runName: runName, groups: groups, summary: summary, viewport: vp}
}

// Init is a no-op; all data is computed before the program starts.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := groupBoxStyle.GetFrameSize()
		reserved := 3 + fh // header + hint + status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderCurrentGroup())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "right", "down", "n":
			if len(m.groups) > 0 {
				m.cursor = (m.cursor + 1) % len(m.groups)
				m.viewport.SetContent(m.renderCurrentGroup())
			}
			return m, nil
		case "left", "up", "p":
			if len(m.groups) > 0 {
				m.cursor = (m.cursor - 1 + len(m.groups)) % len(m.groups)
				m.viewport.SetContent(m.renderCurrentGroup())
			}
			return m, nil
		case "s":
			m.viewport.SetContent(m.renderSummary())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the browser layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Idiom Similarity Results: " + m.runName)
	hint := hintStyle.Render("←/→ groups · s summary · q quit")
	body := groupBoxStyle.Render(m.viewport.View())
	status := statusStyle.Render(fmt.Sprintf("Group %d/%d", m.cursor+1, len(m.groups)))
	return header + "\n" + hint + "\n" + body + "\n" + status
}

func (m Model) renderCurrentGroup() string {
	if len(m.groups) == 0 {
		return "No idiom groups."
	}
	g := m.groups[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "Pair %d %q (paraphrase: %q)\n\n", g.PairID, g.Word, g.ParaphraseWord)
	for _, s := range g.IdiomSentences {
		b.WriteString("  " + s + "\n")
	}
	b.WriteString("\n" + scoreTable("Cosine similarity (higher is closer)", g.Cosine))
	b.WriteString("\n" + scoreTable("Euclidean distance (higher is further)", g.Euclidean))
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.summary
	rows := []struct {
		name string
		stat domain.Stat
	}{
		{"literal to literal", s.LiteralToLiteral},
		{"figurative to literal", s.FigToLiteral},
		{"figurative to figurative", s.FigToFig},
		{"figurative to paraphrase", s.FigToParaphrase},
		{"literal to paraphrase", s.LiteralToParaphrase},
		{"figurative to random", s.FigToRandom},
		{"literal similarity advantage", s.LiteralSimAdvantage},
		{"fig-to-paraphrase advantage", s.FigToParaphraseAdvantage},
		{"fig self-similarity advantage", s.FigToFigAdvantage},
	}
	var b strings.Builder
	b.WriteString("Run averages (cosine)\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-32s %s\n", r.name, r.stat.String())
	}
	return b.String()
}

func scoreTable(title string, s domain.CategoryScores) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	fmt.Fprintf(&b, "  %-24s %s\n", "fig_to_literal", s.FigToLiteral.String())
	fmt.Fprintf(&b, "  %-24s %s\n", "literal_to_literal", s.LiteralToLiteral.String())
	fmt.Fprintf(&b, "  %-24s %s\n", "fig_to_fig", s.FigToFig.String())
	fmt.Fprintf(&b, "  %-24s %s\n", "fig_to_paraphrase", s.FigToParaphrase.String())
	fmt.Fprintf(&b, "  %-24s %s\n", "literal_to_paraphrase", s.LiteralToParaphrase.String())
	if s.FigToRandom.Valid() {
		fmt.Fprintf(&b, "  %-24s %s\n", "fig_to_random", s.FigToRandom.String())
	}
	return b.String()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	groupBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
