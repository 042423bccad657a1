// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"strconv"

	"github.com/danielhkuo/devops-poll/models"
)

// ComputeView derives the display percentages for every option, in tally order.
func ComputeView(t *Tally) []models.OptionPercentage {
	total := t.Total()

	view := make([]models.OptionPercentage, 0, t.Len())
	for _, e := range t.Entries() {
		view = append(view, models.OptionPercentage{
			Label:      e.Label,
			Percentage: strconv.Itoa(Percentage(e.Votes, total)),
		})
	}
	return view
}

// Percentage returns round(100 * votes / total), rounding halves away from
// zero. A zero total yields 0.
func Percentage(votes, total int) int {
	if total <= 0 {
		return 0
	}
	p := math.Round(float64(votes) * 100 / float64(total))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return int(p)
}
