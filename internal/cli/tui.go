package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/lootgrid/pkg/raid"
)

var (
	raidPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	raidInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	raidTimerStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// raidModel - Interactive raid dialogue
// =============================================================================

type openedMsg struct {
	key     string
	opening raidOpening
	err     error
}

type tickMsg time.Time

// raidModel drives a raid.Session from keyboard input. Rendering runs in a
// tea.Cmd so the timer keeps ticking while images are fetched.
type raidModel struct {
	ctx     context.Context
	session *raid.Session
	open    func(context.Context, string) (raidOpening, error)
	name    func(string) string
	// dead saves the death picture and returns its path, or "" if there
	// is none.
	dead func() string

	first   raid.Event
	input   []rune
	lines   []string
	files   []string
	ask     bool
	pending bool
	done    bool
	err     error
}

func newRaidModel(ctx context.Context, s *raid.Session, open func(context.Context, string) (raidOpening, error), name func(string) string) *raidModel {
	return &raidModel{
		ctx:     ctx,
		session: s,
		open:    open,
		name:    name,
		first:   s.Start(),
		ask:     true,
	}
}

func (m *raidModel) Init() tea.Cmd {
	return tea.Batch(m.handle(m.first, "Found"), tick())
}

func (m *raidModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.key(msg)
	case openedMsg:
		m.pending = false
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		res := msg.opening.result
		m.files = append(m.files, msg.opening.path)
		m.say(styleIconSuccess.Render(iconSuccess) + " " + lootSummary(res.Stats.Selected, res.Stats.Placed, res.Stats.Dropped))
		for _, it := range res.Placed() {
			m.say("    " + gradeStyle(it.Grade).Render(it.Name))
		}
		m.say("  " + StyleDim.Render(iconArrow+" "+msg.opening.path))
		if m.session.Done() {
			m.done = true
			return m, tea.Quit
		}
	case tickMsg:
		if m.done || m.session.Done() {
			return m, nil
		}
		if ev := m.session.Expire(); ev.End != raid.Running {
			return m, m.handle(ev, "")
		}
		return m, tick()
	}
	return m, nil
}

func (m *raidModel) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true
		return tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	case tea.KeyEnter:
		if m.pending || m.done {
			return nil
		}
		text := string(m.input)
		m.input = m.input[:0]
		m.say(StyleDim.Render("> " + text))
		ev := m.session.Reply(text)
		m.ask = !ev.Ignored
		return m.handle(ev, "Found another")
	}
	return nil
}

// handle reacts to a session event: it starts rendering an opened
// container and reports the ending, quitting once nothing is in flight.
func (m *raidModel) handle(ev raid.Event, verb string) tea.Cmd {
	var cmd tea.Cmd
	if ev.Opened != "" {
		m.pending = true
		m.say(fmt.Sprintf("%s %s, opening...", verb, StyleHighlight.Render(m.name(ev.Opened))))
		cmd = m.openCmd(ev.Opened)
	}
	if ev.End != raid.Running {
		m.say(endingText(ev.End))
		if ev.End == raid.Died && m.dead != nil {
			if path := m.dead(); path != "" {
				m.files = append(m.files, path)
				m.say("  " + StyleDim.Render(iconArrow+" "+path))
			}
		}
		if !m.pending {
			m.done = true
			return tea.Quit
		}
	}
	return cmd
}

func (m *raidModel) openCmd(key string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		o, err := m.open(ctx, key)
		return openedMsg{key: key, opening: o, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *raidModel) say(line string) {
	m.lines = append(m.lines, line)
}

func (m *raidModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Raid"))
	b.WriteString("\n\n")
	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	if m.done || m.pending {
		return b.String()
	}

	b.WriteString("\n")
	if m.ask {
		b.WriteString(raidPromptStyle.Render(`Keep looting? Reply "continue" or "extract".`))
		b.WriteString("\n")
	}
	b.WriteString(raidPromptStyle.Render("› ") + raidInputStyle.Render(string(m.input)))
	b.WriteString("\n")
	b.WriteString(raidTimerStyle.Render(fmt.Sprintf("%ds left · esc to quit", int(m.session.Remaining().Round(time.Second).Seconds()))))
	b.WriteString("\n")
	return b.String()
}

func endingText(e raid.Ending) string {
	switch e {
	case raid.Extracted:
		return StyleSuccess.Render("Extracted safely!")
	case raid.Died:
		return StyleDanger.Render("You were kicked to death.")
	case raid.TimedOut:
		return StyleWarning.Render("Timed out, extracting automatically.")
	case raid.MaxRetriesReached:
		return StyleWarning.Render("Reached the opening limit, extracting automatically.")
	default:
		return ""
	}
}
