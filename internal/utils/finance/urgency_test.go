package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

func TestClassifyUrgency_Boundaries(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  time.Time
		want domain.Urgency
	}{
		{"overdue yesterday", today.AddDate(0, 0, -1), domain.UrgencyCritical},
		{"due today", today, domain.UrgencyCritical},
		{"due in 7 days", today.AddDate(0, 0, 7), domain.UrgencyCritical},
		{"due in 8 days", today.AddDate(0, 0, 8), domain.UrgencyWarning},
		{"due in 15 days", today.AddDate(0, 0, 15), domain.UrgencyWarning},
		{"due in 16 days", today.AddDate(0, 0, 16), domain.UrgencyNormal},
		{"due far out", today.AddDate(0, 3, 0), domain.UrgencyNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyUrgency(tc.due, today))
		})
	}
}

func TestDaysUntilDue_RoundsUpPartialDays(t *testing.T) {
	today := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	dueTomorrowMorning := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	// 22 hours away still counts as one day out.
	assert.Equal(t, 1, DaysUntilDue(dueTomorrowMorning, today))
}

func TestDaysUntilDue_NegativeWhenOverdue(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, -3, DaysUntilDue(due, today))
}
