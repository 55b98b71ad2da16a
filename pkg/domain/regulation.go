package domain

import (
	"math"
	"time"
)

// RegulationStatus is the lifecycle stage of a tracked policy item.
type RegulationStatus string

const (
	StatusEnacted  RegulationStatus = "enacted"
	StatusPending  RegulationStatus = "pending"
	StatusProposed RegulationStatus = "proposed"
)

// Impact grades how strongly a regulation affects the industry.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Regulation is one tracked policy item. Deadline is optional; SortOrder
// defines ascending display order.
type Regulation struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Region      string           `json:"region"`
	Status      RegulationStatus `json:"status"`
	Impact      Impact           `json:"impact"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	Description string           `json:"description"`
	SourceURL   string           `json:"sourceUrl,omitempty"`
	SortOrder   int              `json:"sortOrder"`
}

// progressWindowMonths is the assumed span of a regulation's run-up: the
// progress bar treats the clock as having started this many months before
// the deadline.
const progressWindowMonths = 18

// DaysRemaining returns whole days until the deadline, never negative, and
// false when the regulation has no deadline.
func (r *Regulation) DaysRemaining(now time.Time) (int, bool) {
	if r.Deadline == nil {
		return 0, false
	}
	diff := r.Deadline.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, true
}

// Progress returns the elapsed fraction of the regulation's run-up window,
// clamped to [0.05, 1.0] so the bar is always visible and never overflows.
// Returns false when there is no deadline.
func (r *Regulation) Progress(now time.Time) (float64, bool) {
	if r.Deadline == nil {
		return 0, false
	}
	end := *r.Deadline
	start := end.Add(-progressWindowMonths * 30 * 24 * time.Hour)
	total := end.Sub(start)
	if total <= 0 {
		return 1, true
	}
	frac := float64(now.Sub(start)) / float64(total)
	if frac < 0.05 {
		frac = 0.05
	}
	if frac > 1 {
		frac = 1
	}
	return frac, true
}
