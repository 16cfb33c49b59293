package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nudge/internal/constants"
	"github.com/julianstephens/nudge/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(10)

	doneBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	notDoneBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const defaultBarWidth = 40

func bar(count, peak, width int) string {
	if peak == 0 || count == 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// Render draws the month's done/not-done totals as a horizontal bar chart.
func Render(s models.MonthlyStats, month time.Time, width int) string {
	if width <= 0 {
		width = defaultBarWidth
	}

	title := titleStyle.Render(fmt.Sprintf("Task completion for %s", month.Format(constants.MonthFormat)))
	if s.Total() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No responses recorded this month."))
	}

	peak := s.DoneCount
	if s.NotDoneCount > peak {
		peak = s.NotDoneCount
	}

	rows := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render("Done"),
			doneBarStyle.Render(bar(s.DoneCount, peak, width)),
			fmt.Sprintf(" %d", s.DoneCount)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render("Not done"),
			notDoneBarStyle.Render(bar(s.NotDoneCount, peak, width)),
			fmt.Sprintf(" %d", s.NotDoneCount)),
		"",
		mutedStyle.Render(fmt.Sprintf("%d responses, %.0f%% completed", s.Total(), s.Rate())),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderDaily draws one column per day, done stacked under not-done.
func RenderDaily(days []DayCount) string {
	var done, notDone, axis strings.Builder
	for _, d := range days {
		switch {
		case d.Done > 0:
			done.WriteString(doneBarStyle.Render("▇"))
		default:
			done.WriteString(mutedStyle.Render("·"))
		}
		if d.NotDone > 0 {
			notDone.WriteString(notDoneBarStyle.Render("▇"))
		} else {
			notDone.WriteString(" ")
		}
		if d.Day%5 == 0 {
			axis.WriteString(mutedStyle.Render(fmt.Sprintf("%d", d.Day%10)))
		} else {
			axis.WriteString(" ")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Done"), done.String()),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Not done"), notDone.String()),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(""), axis.String()),
	)
}
