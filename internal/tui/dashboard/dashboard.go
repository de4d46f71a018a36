// ABOUTME: Dashboard screen summarizing ticket workload
// ABOUTME: Renders status and priority breakdowns with bar indicators

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/tui/icons"
	"github.com/1234-ad/ticketing-system/internal/tui/styles"
	"github.com/1234-ad/ticketing-system/internal/tui/widgets"
)

// Dashboard summarizes the tickets visible to the signed-in user
type Dashboard struct {
	tickets []api.Ticket
	total   int64
	width   int
}

// New creates a dashboard from one fetched page. The page total covers
// tickets beyond the sampled page, so the headline count stays accurate.
func New(page *api.Page[api.Ticket], width int) *Dashboard {
	d := &Dashboard{width: width}
	if page != nil {
		d.tickets = page.Content
		d.total = page.TotalElements
	}
	return d
}

// SetWidth adjusts the bar width after a terminal resize
func (d *Dashboard) SetWidth(width int) {
	d.width = width
}

func (d *Dashboard) countByStatus() map[api.TicketStatus]int {
	counts := make(map[api.TicketStatus]int)
	for _, t := range d.tickets {
		counts[t.Status]++
	}
	return counts
}

func (d *Dashboard) countByPriority() map[api.Priority]int {
	counts := make(map[api.Priority]int)
	for _, t := range d.tickets {
		counts[t.Priority]++
	}
	return counts
}

// OpenCount returns how many sampled tickets are still unresolved
func (d *Dashboard) OpenCount() int {
	n := 0
	for _, t := range d.tickets {
		if t.Status == api.StatusOpen || t.Status == api.StatusInProgress {
			n++
		}
	}
	return n
}

func (d *Dashboard) barWidth() int {
	w := d.width - 30
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Dashboard", icons.Chart.String())))
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(fmt.Sprintf("%d tickets", d.total)))
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(fmt.Sprintf("  (%d unresolved on this page)", d.OpenCount())))
	sb.WriteString("\n\n")

	if len(d.tickets) == 0 {
		sb.WriteString(styles.Subtitle.Render("No tickets yet."))
		return sb.String()
	}

	statusCounts := d.countByStatus()
	sb.WriteString(styles.Subtitle.Render("By status"))
	sb.WriteString("\n")
	for _, status := range []api.TicketStatus{api.StatusOpen, api.StatusInProgress, api.StatusResolved, api.StatusClosed} {
		count := statusCounts[status]
		percent := float64(count) / float64(len(d.tickets)) * 100
		sb.WriteString(fmt.Sprintf("%-22s %s %3d\n",
			widgets.StatusBadge(status), styles.ProgressBar(percent, d.barWidth()), count))
	}

	priorityCounts := d.countByPriority()
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("By priority"))
	sb.WriteString("\n")
	for _, priority := range []api.Priority{api.PriorityUrgent, api.PriorityHigh, api.PriorityMedium, api.PriorityLow} {
		count := priorityCounts[priority]
		percent := float64(count) / float64(len(d.tickets)) * 100
		sb.WriteString(fmt.Sprintf("%-22s %s %3d\n",
			widgets.PriorityBadge(priority), styles.ProgressBar(percent, d.barWidth()), count))
	}

	return sb.String()
}
