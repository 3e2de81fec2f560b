package finance

import (
	"math"
	"time"

	"github.com/tamkeenlabs/facility_management_app/internal/core/domain"
)

// DaysUntilDue is the whole number of days from today until the due date,
// rounded up. Negative when the due date has passed. The computation is
// timezone-naive; callers pass dates already normalized to the same zone.
func DaysUntilDue(dueDate, today time.Time) int {
	diff := dueDate.Sub(today)
	return int(math.Ceil(diff.Hours() / 24))
}

// ClassifyUrgency buckets a due date relative to today. Boundaries at 7 and
// 15 days are inclusive of the stricter bucket: due in exactly 7 days is
// critical, due in exactly 15 days is warning.
func ClassifyUrgency(dueDate, today time.Time) domain.Urgency {
	days := DaysUntilDue(dueDate, today)
	switch {
	case days <= 7:
		return domain.UrgencyCritical
	case days <= 15:
		return domain.UrgencyWarning
	default:
		return domain.UrgencyNormal
	}
}
