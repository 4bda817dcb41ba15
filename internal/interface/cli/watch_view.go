package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"streamNotify/internal/app/events"
	"streamNotify/internal/domain"
	"streamNotify/internal/i18n"
	"streamNotify/internal/usecase/notifications"
	"streamNotify/internal/usecase/watch"
)

// Subscriber is the part of events.Bus the watch view needs.
type Subscriber interface {
	Subscribe(topic string) (<-chan any, func())
}

// eventMsg carries one bus message into the model.
type eventMsg struct {
	topic   string
	payload any
	ch      <-chan any
}

// WatchModel shows the watched broadcaster's state until the user presses q.
type WatchModel struct {
	broadcaster domain.Broadcaster
	format      domain.NotificationFormat
	channels    map[string]<-chan any
	unsubscribe []func()

	checked  bool
	status   events.StatusDTO
	failure  *events.FailureDTO
	notified time.Time
	lastNote events.NotificationDTO
}

func NewWatchModel(bus Subscriber, b domain.Broadcaster, format domain.NotificationFormat) *WatchModel {
	m := &WatchModel{
		broadcaster: b,
		format:      format,
		channels:    make(map[string]<-chan any),
	}
	for _, topic := range []string{
		events.TopicStreamStatus,
		events.TopicStreamLive,
		events.TopicWatchFailure,
		events.TopicNotification,
	} {
		ch, unsub := bus.Subscribe(topic)
		m.channels[topic] = ch
		m.unsubscribe = append(m.unsubscribe, unsub)
	}
	return m
}

// Close drops the model's bus subscriptions.
func (m *WatchModel) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *WatchModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.channels))
	for topic, ch := range m.channels {
		cmds = append(cmds, waitFor(topic, ch))
	}
	return tea.Batch(cmds...)
}

func waitFor(topic string, ch <-chan any) tea.Cmd {
	return func() tea.Msg {
		payload, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{topic: topic, payload: payload, ch: ch}
	}
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			return m, tea.Quit
		}

	case eventMsg:
		m.apply(msg.topic, msg.payload)
		return m, waitFor(msg.topic, msg.ch)
	}
	return m, nil
}

func (m *WatchModel) apply(topic string, payload any) {
	switch p := payload.(type) {
	case events.StatusDTO:
		m.checked = true
		m.status = p
		m.failure = nil
		if topic == events.TopicStreamLive {
			m.notified = p.CheckedAt
		}
	case events.FailureDTO:
		m.failure = &p
	case events.NotificationDTO:
		m.lastNote = p
	}
}

func (m *WatchModel) View() string {
	var b strings.Builder

	label := notifications.ChannelLabel(m.broadcaster.DisplayName, m.broadcaster.Login)
	b.WriteString(titleStyle.Render(i18n.Tf("watching", label)))
	b.WriteString("  ")
	b.WriteString(m.badge())
	b.WriteString("\n\n")

	if m.checked && m.status.Live {
		b.WriteString(textStyle.Render(i18n.Tf("live_title", m.status.Title)))
		b.WriteString("\n")
		if m.status.GameName != "" {
			b.WriteString(textStyle.Render(i18n.Tf("live_game", m.status.GameName)))
			b.WriteString("\n")
		}
		b.WriteString(textStyle.Render(i18n.Tf("live_viewers", m.status.ViewerCount)))
		b.WriteString("\n")
	}

	if m.checked {
		b.WriteString(hintStyle.Render(i18n.Tf("last_check", m.status.CheckedAt.Local().Format(time.TimeOnly))))
		b.WriteString("\n")
	}
	if !m.notified.IsZero() {
		b.WriteString(hintStyle.Render(i18n.Tf("notified_at", m.notified.Local().Format(time.TimeOnly))))
		b.WriteString("\n")
	}

	if f := m.failure; f != nil {
		line := i18n.Tf("last_error", f.Error)
		if f.Count >= watch.WarnThreshold {
			b.WriteString(warnStyle.Render(i18n.Tf("warn_failures", f.Count, f.Kind)))
			b.WriteString("\n")
		}
		b.WriteString(errorStyle.Render(line))
		b.WriteString("\n")
	}

	if m.lastNote.Error != "" {
		b.WriteString(errorStyle.Render(m.lastNote.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%s  [%s]", i18n.T("quit_hint"), m.format)))
	return panelStyle.Render(b.String()) + "\n"
}

func (m *WatchModel) badge() string {
	switch {
	case !m.checked:
		return offlineBadge.Render(i18n.T("status_unknown"))
	case m.status.Live:
		return liveBadge.Render(i18n.T("status_live"))
	default:
		return offlineBadge.Render(i18n.T("status_offline"))
	}
}
