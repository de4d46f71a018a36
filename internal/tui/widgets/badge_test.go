// ABOUTME: Tests for badge widgets
// ABOUTME: Verifies label mapping for status, priority, and role badges

package widgets

import (
	"strings"
	"testing"

	"github.com/1234-ad/ticketing-system/internal/api"
)

func TestStatusBadgeLabels(t *testing.T) {
	tests := []struct {
		status api.TicketStatus
		want   string
	}{
		{api.StatusOpen, "OPEN"},
		{api.StatusInProgress, "IN PROGRESS"},
		{api.StatusResolved, "RESOLVED"},
		{api.StatusClosed, "CLOSED"},
	}

	for _, tt := range tests {
		if got := StatusBadge(tt.status); !strings.Contains(got, tt.want) {
			t.Errorf("StatusBadge(%s) = %q, expected to contain %q", tt.status, got, tt.want)
		}
	}
}

func TestPriorityBadgeLabels(t *testing.T) {
	tests := []struct {
		priority api.Priority
		want     string
	}{
		{api.PriorityLow, "LOW"},
		{api.PriorityMedium, "MEDIUM"},
		{api.PriorityHigh, "HIGH"},
		{api.PriorityUrgent, "URGENT"},
	}

	for _, tt := range tests {
		if got := PriorityBadge(tt.priority); !strings.Contains(got, tt.want) {
			t.Errorf("PriorityBadge(%s) = %q, expected to contain %q", tt.priority, got, tt.want)
		}
	}
}

func TestRoleBadgeLabels(t *testing.T) {
	if got := RoleBadge(api.RoleSupportAgent); !strings.Contains(got, "AGENT") {
		t.Errorf("RoleBadge(SUPPORT_AGENT) = %q, expected AGENT", got)
	}
	if got := RoleBadge(api.RoleAdmin); !strings.Contains(got, "ADMIN") {
		t.Errorf("RoleBadge(ADMIN) = %q, expected ADMIN", got)
	}
}

func TestUnknownStatusFallsBack(t *testing.T) {
	got := StatusBadge(api.TicketStatus("ARCHIVED"))
	if !strings.Contains(got, "ARCHIVED") {
		t.Errorf("unknown status should render its raw value, got %q", got)
	}
}
