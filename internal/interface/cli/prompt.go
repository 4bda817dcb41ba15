package cli

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"streamNotify/internal/domain"
	"streamNotify/internal/i18n"
)

// maxLoginLen is the longest login Twitch accepts.
const maxLoginLen = 25

// LookupFunc resolves a login to a broadcaster.
type LookupFunc func(ctx context.Context, login string) (domain.Broadcaster, error)

type promptStage int

const (
	stageName promptStage = iota
	stageLookup
	stageFormat
	stageDone
)

// submitMsg submits a pre-filled login.
type submitMsg struct{}

// lookupResultMsg carries the result of a LookupFunc call.
type lookupResultMsg struct {
	broadcaster domain.Broadcaster
	err         error
}

// PromptResult is what the prompt collected. Cancelled is set when the user
// quit before finishing.
type PromptResult struct {
	Broadcaster domain.Broadcaster
	Format      domain.NotificationFormat
	Cancelled   bool
}

// PromptModel asks for a streamer login, checks that it exists and then asks
// for the notification format unless one was preset.
type PromptModel struct {
	ctx     context.Context
	lookup  LookupFunc
	stage   promptStage
	input   []rune
	errMsg  string
	formats []domain.NotificationFormat
	cursor  int
	result  PromptResult
}

func NewPromptModel(ctx context.Context, lookup LookupFunc, format domain.NotificationFormat) PromptModel {
	m := PromptModel{
		ctx:     ctx,
		lookup:  lookup,
		formats: domain.NotificationFormats(),
	}
	m.result.Format = format
	for i, f := range m.formats {
		if f == domain.FormatDialog {
			m.cursor = i
		}
	}
	return m
}

// WithLogin pre-fills the login and starts the lookup right away.
func (m PromptModel) WithLogin(login string) PromptModel {
	m.input = []rune(login)
	return m
}

func (m PromptModel) Init() tea.Cmd {
	if len(m.input) > 0 {
		return func() tea.Msg { return submitMsg{} }
	}
	return nil
}

func (m PromptModel) Result() PromptResult {
	return m.result
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitMsg:
		return m.submit()

	case lookupResultMsg:
		return m.handleLookup(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.result.Cancelled = true
			return m, tea.Quit
		}
		switch m.stage {
		case stageName:
			return m.updateName(msg)
		case stageFormat:
			return m.updateFormat(msg)
		}
	}
	return m, nil
}

func (m PromptModel) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyRunes:
		if len(m.input)+len(msg.Runes) <= maxLoginLen {
			m.input = append(m.input, msg.Runes...)
		}
	}
	return m, nil
}

func (m PromptModel) submit() (tea.Model, tea.Cmd) {
	login := strings.TrimSpace(string(m.input))
	switch err := domain.ValidateLogin(login); {
	case errors.Is(err, domain.ErrEmptyLogin):
		m.errMsg = i18n.T("err_empty_login")
		return m, nil
	case err != nil:
		m.errMsg = i18n.T("err_invalid_login")
		return m, nil
	}

	m.errMsg = ""
	m.stage = stageLookup
	ctx, lookup := m.ctx, m.lookup
	return m, func() tea.Msg {
		b, err := lookup(ctx, login)
		return lookupResultMsg{broadcaster: b, err: err}
	}
}

func (m PromptModel) handleLookup(msg lookupResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.stage = stageName
		if errors.Is(msg.err, domain.ErrNotFound) {
			m.errMsg = i18n.Tf("err_not_found", string(m.input))
		} else {
			m.errMsg = i18n.Tf("err_lookup_failed", msg.err)
		}
		return m, nil
	}

	m.result.Broadcaster = msg.broadcaster
	if m.result.Format != "" {
		m.stage = stageDone
		return m, tea.Quit
	}
	m.stage = stageFormat
	return m, nil
}

func (m PromptModel) updateFormat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.formats)-1 {
			m.cursor++
		}
	case "enter":
		m.result.Format = m.formats[m.cursor]
		m.stage = stageDone
		return m, tea.Quit
	}
	return m, nil
}

func (m PromptModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("app_title")))
	b.WriteString("\n\n")

	switch m.stage {
	case stageName, stageLookup:
		b.WriteString(textStyle.Render(i18n.T("prompt_streamer")))
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(string(m.input) + cursorStyle.Render("▏")))
		b.WriteString("\n")
		if m.stage == stageLookup {
			b.WriteString(hintStyle.Render(i18n.Tf("looking_up", string(m.input))))
			b.WriteString("\n")
		}
		if m.errMsg != "" {
			b.WriteString(errorStyle.Render(m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(i18n.T("prompt_hint")))

	case stageFormat:
		b.WriteString(textStyle.Render(i18n.T("prompt_format")))
		b.WriteString("\n")
		for i, f := range m.formats {
			line := "  " + formatLabel(f)
			if i == m.cursor {
				line = cursorStyle.Render("> " + formatLabel(f))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(i18n.T("format_hint")))

	case stageDone:
		return ""
	}

	return panelStyle.Render(b.String()) + "\n"
}

func formatLabel(f domain.NotificationFormat) string {
	if f == domain.FormatNotification {
		return i18n.T("format_notify")
	}
	return i18n.T("format_dialog")
}
