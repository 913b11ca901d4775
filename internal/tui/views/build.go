package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/f3rmion/orbital/internal/campaign"
	"github.com/f3rmion/orbital/internal/clipboard"
	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
	store "github.com/f3rmion/orbital/internal/progress"
	"github.com/f3rmion/orbital/internal/session"
	"github.com/f3rmion/orbital/internal/tui/bigsymbol"
	"github.com/f3rmion/orbital/internal/tutor"
)

// Build view styles
var (
	buildSymbolStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d"))

	buildNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	buildMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	buildCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee")).
			Background(lipgloss.Color("#2d3436")).
			Padding(0, 1).
			MarginRight(1)

	buildCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#ffe66d")).
				Padding(0, 1).
				MarginRight(1)

	buildHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#4ecdc4")).
			Padding(0, 1).
			MarginRight(1)

	buildConfigStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee")).
				Bold(true)

	buildOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	buildErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	buildWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	buildInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	buildTutorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1).
			MarginTop(1)

	buildHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

type explainResultMsg struct {
	z    int
	text string
	err  error
}

// BuildModel is the board where the player places electrons.
type BuildModel struct {
	session *session.Session
	config  *config.Config
	store   *store.Store
	tutor   *tutor.Client
	logger  *zap.Logger

	cursor int
	hint   *orbital.Placement

	last   *session.Outcome
	status string
	err    error

	// Tutor
	explanation string
	explaining  bool
	explainErr  error

	copied bool
	bar    progress.Model

	width  int
	height int
}

// NewBuildModel creates the board for an existing session. store and
// client may be nil.
func NewBuildModel(s *session.Session, cfg *config.Config, st *store.Store, client *tutor.Client, logger *zap.Logger) BuildModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BuildModel{
		session: s,
		config:  cfg,
		store:   st,
		tutor:   client,
		logger:  logger,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Session returns the session the board is playing.
func (m BuildModel) Session() *session.Session {
	return m.session
}

// SetSize updates the view dimensions.
func (m *BuildModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = minInt(max(width-12, 10), 50)
}

// SetElement loads atom z onto the board.
func (m *BuildModel) SetElement(z int) error {
	if err := m.session.SetElement(z); err != nil {
		return err
	}
	m.clearFeedback()
	m.cursor = 0
	m.logger.Info("atom loaded", zap.String("session", m.session.ID), zap.Int("z", z))
	return nil
}

// SetMode switches the rule severity for subsequent placements.
func (m *BuildModel) SetMode(mode orbital.Mode) {
	m.session.SetMode(mode)
}

func (m *BuildModel) clearFeedback() {
	m.hint = nil
	m.last = nil
	m.status = ""
	m.err = nil
	m.explanation = ""
	m.explainErr = nil
	m.explaining = false
}

// Update handles messages.
func (m BuildModel) Update(msg tea.Msg) (BuildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case explainResultMsg:
		if msg.z != m.session.Element.Z || !m.explaining {
			return m, nil
		}
		m.explaining = false
		m.explainErr = msg.err
		m.explanation = msg.text
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case CompletionSavedMsg:
		if msg.Err != nil {
			m.logger.Warn("recording completion failed", zap.Int("z", msg.Z), zap.Error(msg.Err))
			return m, nil
		}
		if len(msg.Unlocked) > 0 && msg.Z == m.session.Element.Z {
			var names []string
			for _, a := range msg.Unlocked {
				names = append(names, a.Name)
			}
			m.status += "  ★ " + strings.Join(names, ", ")
		}
		return m, nil
	}

	return m, nil
}

func (m BuildModel) handleKey(msg tea.KeyMsg) (BuildModel, tea.Cmd) {
	orbitals := m.session.State.Orbitals()

	switch msg.String() {
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(orbitals)-1 {
			m.cursor++
		}
	case "up":
		m.cursor = m.jumpSubshell(orbitals, 1)
	case "down":
		m.cursor = m.jumpSubshell(orbitals, -1)
	case "u":
		return m.place(orbitals[m.cursor].ID, orbital.Up)
	case "d":
		return m.place(orbitals[m.cursor].ID, orbital.Down)
	case "h":
		if p, ok := m.session.Hint(); ok {
			m.hint = &p
			m.cursor = m.indexOf(orbitals, p.Orbital)
			m.status = fmt.Sprintf("Hint: %s", p)
			m.err = nil
		}
	case "r":
		out, err := m.session.Reveal()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.cursor = m.indexOf(orbitals, out.Placement.Orbital)
		return m.afterPlacement(out)
	case "z":
		if err := m.session.Undo(); err != nil {
			m.err = err
			return m, nil
		}
		m.hint = nil
		m.last = nil
		m.err = nil
		m.status = "Undid last placement"
	case "R":
		m.session.Reset()
		m.clearFeedback()
		m.cursor = 0
		m.status = "Board cleared"
	case "y":
		if err := clipboard.Write(m.configuration()); err == nil {
			m.copied = true
			return m, clearCopiedAfter(2 * time.Second)
		}
	case "e":
		if m.explaining {
			return m, nil
		}
		if m.tutor == nil {
			m.explainErr = fmt.Errorf("tutor unavailable: ANTHROPIC_API_KEY not set")
			return m, nil
		}
		m.explaining = true
		m.explainErr = nil
		return m, m.explain()
	case "n":
		if !m.session.State.Complete() {
			return m, nil
		}
		next := m.session.Element.Z + 1
		last := elements.Count()
		if m.session.Mode == orbital.Campaign {
			last = campaign.LastZ
		}
		if next > last {
			return m, nil
		}
		return m, func() tea.Msg { return StartLevelMsg{Z: next} }
	}
	return m, nil
}

func (m BuildModel) place(id orbital.ID, spin orbital.Spin) (BuildModel, tea.Cmd) {
	out, err := m.session.Place(id, spin)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.afterPlacement(out)
}

func (m BuildModel) afterPlacement(out session.Outcome) (BuildModel, tea.Cmd) {
	m.last = &out
	m.err = nil
	m.hint = nil
	m.status = describeOutcome(out, m.session.Mode)

	fields := []zap.Field{
		zap.String("session", m.session.ID),
		zap.Int("z", m.session.Element.Z),
		zap.String("placement", out.Placement.String()),
		zap.Bool("accepted", out.Verdict.Accepted),
	}
	if v := out.Verdict.Violation; v != nil {
		fields = append(fields, zap.Stringer("violation", v.Kind), zap.Stringer("severity", v.Severity))
	}
	m.logger.Debug("placement", fields...)

	if !out.Completed {
		return m, nil
	}
	r := m.session.Result()
	m.logger.Info("atom completed",
		zap.String("session", m.session.ID),
		zap.Int("z", m.session.Element.Z),
		zap.Int("stars", r.Stars),
		zap.Int("points", r.Points),
	)
	if m.session.Mode == orbital.Campaign {
		m.status += fmt.Sprintf("  Complete! %s", strings.Repeat("★", r.Stars))
		return m, m.recordCompletion(r)
	}
	m.status += "  Complete!"
	return m, nil
}

func (m BuildModel) recordCompletion(r session.Result) tea.Cmd {
	st := m.store
	if st == nil {
		return nil
	}
	c := store.Completion{
		Z:          m.session.Element.Z,
		Stars:      r.Stars,
		Points:     r.Points,
		Mistakes:   r.Mistakes,
		Hints:      r.Hints,
		Hund:       r.Hund,
		BestStreak: r.BestStreak,
		Rating:     r.Rating,
		HasPorD:    hasPorD(m.session.State.Subshells()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		unlocked, err := st.RecordCompletion(ctx, c)
		return CompletionSavedMsg{Z: c.Z, Unlocked: unlocked, Err: err}
	}
}

func (m BuildModel) explain() tea.Cmd {
	client := m.tutor
	el := m.session.Element
	req := tutor.Request{
		Element:       fmt.Sprintf("%s (%s, Z=%d)", el.Name, el.Symbol, el.Z),
		Configuration: m.session.State.Configuration(),
		Target:        elements.CoreNotation(orbital.FullConfiguration(el.Z)),
	}
	if m.last != nil && m.last.Verdict.Violation != nil {
		req.Violation = m.last.Verdict.Violation.Error()
	}
	if exc, ok := elements.Exception(el.Z); ok {
		req.Exception = exc
	}

	wrap := max(m.width-10, 20)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		text, err := client.Explain(ctx, req)
		if err != nil {
			return explainResultMsg{z: el.Z, err: err}
		}
		return explainResultMsg{z: el.Z, text: renderMarkdown(text, wrap)}
	}
}

// renderMarkdown styles tutor output, falling back to the raw text.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

func (m BuildModel) configuration() string {
	fills := m.session.State.Subshells()
	if m.config != nil && m.config.ShowCoreNotation {
		return elements.CoreNotation(fills)
	}
	return orbital.FormatConfiguration(fills)
}

func (m BuildModel) indexOf(orbitals []orbital.Orbital, id orbital.ID) int {
	for i, o := range orbitals {
		if o.ID == id {
			return i
		}
	}
	return m.cursor
}

// jumpSubshell moves the cursor to the first orbital of the neighbouring subshell.
func (m BuildModel) jumpSubshell(orbitals []orbital.Orbital, dir int) int {
	if len(orbitals) == 0 {
		return 0
	}
	cur := orbitals[m.cursor].ID.Subshell()
	if dir > 0 {
		for i := m.cursor + 1; i < len(orbitals); i++ {
			if orbitals[i].ID.Subshell() != cur {
				return i
			}
		}
		return m.cursor
	}
	start := -1
	for i := m.cursor - 1; i >= 0; i-- {
		s := orbitals[i].ID.Subshell()
		if s == cur {
			continue
		}
		if start >= 0 && orbitals[start].ID.Subshell() != s {
			break
		}
		start = i
	}
	if start < 0 {
		return m.cursor
	}
	return start
}

// View renders the board.
func (m BuildModel) View() string {
	var b strings.Builder
	el := m.session.Element

	header := m.renderHeader(el)
	board := m.renderBoard()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header, "   ", board))
	b.WriteString("\n\n")

	b.WriteString(buildConfigStyle.Render(m.configuration()))
	if m.copied {
		b.WriteString("  " + buildOKStyle.Render("Copied!"))
	}
	b.WriteString("\n")
	placed, total := m.session.State.Placed(), m.session.State.Total()
	b.WriteString(m.bar.ViewAs(float64(placed) / float64(total)))
	b.WriteString(buildMutedStyle.Render(fmt.Sprintf("  %d/%d", placed, total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderScore())

	switch {
	case m.explaining:
		b.WriteString("\n" + buildInfoStyle.Render("Asking the tutor..."))
	case m.explainErr != nil:
		b.WriteString("\n" + buildErrorStyle.Render(m.explainErr.Error()))
	case m.explanation != "":
		b.WriteString("\n" + buildTutorStyle.Render(m.explanation))
	}

	b.WriteString("\n")
	help := "←/→ ↑/↓: move • u/d: place spin • h: hint • r: reveal • z: undo • R: reset • y: copy • e: explain"
	if m.session.State.Complete() {
		help = "n: next atom • R: replay • y: copy • e: explain"
	}
	b.WriteString(buildHelpStyle.Render(help))

	return b.String()
}

func (m BuildModel) renderHeader(el elements.Element) string {
	var b strings.Builder
	if art := bigsymbol.Cached(el.Symbol, 16, 6); art != "" {
		b.WriteString(buildSymbolStyle.Render(art))
	} else {
		b.WriteString(buildSymbolStyle.Render(el.Symbol))
	}
	b.WriteString("\n")
	b.WriteString(buildNameStyle.Render(el.Name))
	b.WriteString("\n")
	b.WriteString(buildMutedStyle.Render(fmt.Sprintf("Z = %d • %s", el.Z, m.session.Mode)))
	if lvl := campaign.ForZ(el.Z); lvl != nil && m.session.Mode == orbital.Campaign {
		b.WriteString("\n")
		b.WriteString(buildMutedStyle.Render(lvl.Chapter))
	}
	return b.String()
}

func (m BuildModel) renderBoard() string {
	orbitals := m.session.State.Orbitals()
	var rows []string
	var cells []string
	var cur orbital.Subshell

	flush := func() {
		if len(cells) == 0 {
			return
		}
		label := lipgloss.NewStyle().
			Foreground(lipgloss.Color(cur.Color())).
			Bold(true).
			Render(runewidth.FillRight(cur.Label(), 4))
		rows = append(rows, label+strings.Join(cells, ""))
		cells = nil
	}

	for i, o := range orbitals {
		if s := o.ID.Subshell(); s != cur {
			flush()
			cur = s
		}
		cells = append(cells, m.renderCell(i, o))
	}
	flush()

	// Highest energy on top, like an energy diagram.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return strings.Join(rows, "\n")
}

func (m BuildModel) renderCell(i int, o orbital.Orbital) string {
	var arrows string
	for _, e := range o.Electrons {
		arrows += e.Spin.Arrow()
	}
	arrows = runewidth.FillRight(arrows, 2)

	switch {
	case i == m.cursor:
		return buildCursorStyle.Render(arrows)
	case m.hint != nil && m.hint.Orbital == o.ID:
		return buildHintStyle.Render(arrows)
	default:
		return buildCellStyle.Render(arrows)
	}
}

func (m BuildModel) renderStatus() string {
	if m.err != nil {
		switch {
		case errors.Is(m.err, session.ErrNothingToUndo):
			return buildMutedStyle.Render(m.err.Error())
		case errors.Is(m.err, session.ErrComplete):
			return buildMutedStyle.Render("The atom is complete")
		default:
			return buildErrorStyle.Render(m.err.Error())
		}
	}
	if m.last == nil {
		if m.status != "" {
			return buildInfoStyle.Render(m.status)
		}
		return buildMutedStyle.Render("Place the next electron")
	}
	v := m.last.Verdict
	switch {
	case v.Violation == nil:
		return buildOKStyle.Render(m.status)
	case v.Violation.Severity == orbital.SeverityHard:
		return buildErrorStyle.Render(m.status)
	case v.Violation.Severity == orbital.SeveritySoft:
		return buildWarnStyle.Render(m.status)
	default:
		return buildInfoStyle.Render(m.status)
	}
}

func (m BuildModel) renderScore() string {
	if m.session.Mode == orbital.Sandbox {
		return buildMutedStyle.Render("Sandbox • unscored")
	}
	t := m.session.Score
	return buildMutedStyle.Render(fmt.Sprintf(
		"Points %d • Streak %d (best %d) • Rating %.0f • Mistakes %d • Hints %d",
		t.Points, t.Streak, t.BestStreak, t.Rating, t.Mistakes, t.Hints,
	))
}

// describeOutcome renders one placement result as a status line.
func describeOutcome(out session.Outcome, mode orbital.Mode) string {
	v := out.Verdict
	var s string
	switch {
	case out.Hinted:
		s = fmt.Sprintf("Revealed %s", out.Placement)
	case v.Violation == nil:
		s = fmt.Sprintf("✓ %s", out.Placement)
	case v.Accepted:
		s = fmt.Sprintf("⚠ %s", v.Violation.Error())
	default:
		s = fmt.Sprintf("✗ %s", v.Violation.Error())
	}
	if mode == orbital.Campaign && out.Delta.Points != 0 {
		s += fmt.Sprintf(" (%+d)", out.Delta.Points)
	}
	return s
}

func hasPorD(fills []orbital.SubshellFill) bool {
	for _, f := range fills {
		if f.Subshell.L >= 1 && f.Electrons > 0 {
			return true
		}
	}
	return false
}
