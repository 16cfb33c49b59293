package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nudge/internal/notifier"
	"github.com/julianstephens/nudge/internal/recorder"
	"github.com/julianstephens/nudge/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Tasks", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	active := m.engine.Active()
	if active == nil {
		return ""
	}
	text := fmt.Sprintf("⏰ %s  [y] did it  [n] didn't", notifier.Message(active.Task))
	if waiting := len(m.engine.Pending()) - 1; waiting > 0 {
		text += fmt.Sprintf("  (+%d waiting)", waiting)
	}
	return alertStyle.Render(text)
}

func (m Model) viewStats() string {
	now := m.clock.Now()
	log := recorder.New(m.kv).Load()

	width := m.width / 2
	return lipgloss.JoinVertical(lipgloss.Left,
		stats.Render(stats.Monthly(log, now), now, width),
		"",
		stats.RenderDaily(stats.Daily(log, now)),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", m.deleteName)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		if m.lastRefresh.IsZero() {
			return mutedStyle.Render("Loading tasks…")
		}
		return mutedStyle.Render("Tasks refreshed at " + m.lastRefresh.Format("15:04"))
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}
