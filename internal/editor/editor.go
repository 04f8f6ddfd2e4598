// Package editor is the terminal front end: it owns the screen and
// the keypress stream and feeds assembled command lines to the
// command engine.
package editor

import (
	"errors"
	"strings"

	"hexline/internal/buffer"
	"hexline/internal/command"
	"hexline/internal/config"
	"hexline/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	// ViewDump shows the rendered dump with the command prompt
	// underneath.
	ViewDump View = iota

	// ViewNotice shows help text or an unknown-command hint until
	// the user submits a line.
	ViewNotice

	// ViewEditLine shows a fetched hex line and collects its
	// replacement text.
	ViewEditLine
)

const separatorWidth = 80

type Model struct {
	buf    *buffer.Buffer
	engine *command.Engine
	styles *config.Styles
	colors bool

	view   View
	input  string // command line being typed
	edit   string // replacement line being typed
	notice string
	status string
	dump   string // last successfully rendered dump

	width  int
	height int

	finalMsg string
	fatalErr error
}

func New(buf *buffer.Buffer, engine *command.Engine, styles *config.Styles, colors bool) (*Model, error) {
	m := &Model{
		buf:    buf,
		engine: engine,
		styles: styles,
		colors: colors,
	}

	// A freshly parsed file must render; failure here is the fatal
	// invariant violation, not a user mistake.
	dump, err := buf.Render()
	if err != nil {
		return nil, err
	}
	m.dump = dump

	return m, nil
}

// FinalMessage is the text to print after the program releases the
// screen (the save confirmation).
func (m *Model) FinalMessage() string {
	return m.finalMsg
}

// Err reports the fatal error that ended the session, if any.
func (m *Model) Err() error {
	return m.fatalErr
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case ViewNotice:
		return m.handleNoticeKey(msg)
	case ViewEditLine:
		return m.handleEditLineKey(msg)
	default:
		return m.handleDumpKey(msg)
	}
}

func (m *Model) handleDumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		return m, m.dispatch()
	case "backspace":
		m.input = trimLastRune(m.input)
	default:
		m.input += typedText(msg)
	}
	return m, nil
}

func (m *Model) handleNoticeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.view = ViewDump
		m.notice = ""
	}
	return m, nil
}

func (m *Model) handleEditLineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: deliver empty input so the pending line is left
		// unchanged.
		_, _ = m.engine.Resume("")
		m.view = ViewDump
		m.notice = ""
		m.edit = ""
	case "enter":
		_, err := m.engine.Resume(m.edit)
		m.view = ViewDump
		m.notice = ""
		m.edit = ""
		if err != nil {
			return m, m.report(err)
		}
		return m, m.refresh()
	case "backspace":
		m.edit = trimLastRune(m.edit)
	default:
		m.edit += typedText(msg)
	}
	return m, nil
}

func (m *Model) dispatch() tea.Cmd {
	line := m.input
	m.input = ""
	m.status = ""

	res, err := m.engine.Dispatch(line)
	if err != nil {
		return m.report(err)
	}

	switch {
	case res.Quit:
		m.finalMsg = res.Output
		return tea.Quit
	case res.Await == command.AwaitAck:
		m.view = ViewNotice
		m.notice = res.Output
	case res.Await == command.AwaitReplacement:
		m.view = ViewEditLine
		m.notice = res.Output
		m.edit = ""
	default:
		m.status = res.Output
	}

	return m.refresh()
}

// report surfaces an error on the status line, or ends the session if
// the buffer invariant is broken.
func (m *Model) report(err error) tea.Cmd {
	if errors.Is(err, buffer.ErrCorruptLine) {
		m.fatalErr = err
		return tea.Quit
	}
	logger.Warn("command failed", "error", err)
	m.status = err.Error()
	return nil
}

// refresh regenerates the dump. A recoverable decode failure keeps
// the previous dump on screen alongside the error.
func (m *Model) refresh() tea.Cmd {
	dump, err := m.buf.Render()
	if err != nil {
		return m.report(err)
	}
	m.dump = dump
	return nil
}

func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case ViewNotice:
		b.WriteString(m.notice)
		b.WriteString("\n")
		b.WriteString(m.sty(m.styles.Prompt, "Press enter to continue."))
		b.WriteString("\n")

	case ViewEditLine:
		b.WriteString(m.notice)
		b.WriteString("\n")
		b.WriteString(m.separator())
		b.WriteString("\n")
		b.WriteString(m.edit)

	default:
		b.WriteString(m.dump)
		b.WriteString(m.separator())
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(m.sty(m.styles.StatusError, m.status))
			b.WriteString("\n")
		}
		b.WriteString(m.sty(m.styles.Prompt, "> "))
		b.WriteString(m.input)
	}

	return b.String()
}

func (m *Model) separator() string {
	return m.sty(m.styles.Separator, strings.Repeat("-", separatorWidth))
}

func (m *Model) sty(s lipgloss.Style, text string) string {
	if !m.colors {
		return text
	}
	return s.Render(text)
}

// typedText returns the printable text of a keypress, or "".
func typedText(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return " "
	case tea.KeyRunes:
		return string(msg.Runes)
	}
	return ""
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
