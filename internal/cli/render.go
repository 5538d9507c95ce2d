package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/tracker"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle    = lipgloss.NewStyle().Width(10)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	readyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	waitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// StatusStyle returns the style a status is rendered with.
func StatusStyle(s scheduler.Status) lipgloss.Style {
	switch s {
	case scheduler.StatusReady:
		return readyStyle
	case scheduler.StatusComplete:
		return completeStyle
	}
	return waitStyle
}

// RenderStatus renders the dashboard summary printed by the status command.
func RenderStatus(d tracker.Dashboard) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s's expander", d.ChildName)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Today %s · %s", d.Today, FormatSchedule(d.ScheduleType, d.IntervalDays))))
	b.WriteString("\n\n")

	for _, v := range d.Tracks {
		line := fmt.Sprintf("%s %2d/%-2d  %s", labelStyle.Render(strings.ToUpper(string(v.Track))),
			v.Done, v.Total, StatusStyle(v.Status).Render(FormatEligibility(v.Eligibility)))
		if v.NextDue != "" && v.Status == scheduler.StatusWait {
			line += mutedStyle.Render("  next " + v.NextDue)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if d.LogTogether {
		status := scheduler.StatusOf(d.Combined.Eligibility)
		line := fmt.Sprintf("%s        %s", labelStyle.Render("BOTH"),
			StatusStyle(status).Render(FormatEligibility(d.Combined.Eligibility)))
		if d.Combined.NextDue != "" && status == scheduler.StatusWait {
			line += mutedStyle.Render("  next " + d.Combined.NextDue)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Top and bottom are logged together."))
		b.WriteString("\n")
	}

	return b.String()
}
