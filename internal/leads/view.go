package leads

import (
	"math"
	"slices"
	"strings"
	"time"
)

// SortState is the list's current ordering.
type SortState struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSort shows the newest leads first.
var DefaultSort = SortState{Field: SortByCreatedAt, Order: SortDesc}

// Toggle returns the state after the user picks field: the same field flips
// direction, a different field starts ascending.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field && s.Order == SortAsc {
		return SortState{Field: field, Order: SortDesc}
	}
	return SortState{Field: field, Order: SortAsc}
}

// Query describes one rendering of the list.
type Query struct {
	Search string
	Source string
	Sort   SortState
}

// Derive filters, searches and sorts leads for display. The input slice is not modified.
func Derive(leads []Lead, q Query) []Lead {
	term := strings.ToLower(q.Search)
	out := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		if !matchesSearch(lead, q.Search, term) {
			continue
		}
		if q.Source != "" && lead.LeadSource != q.Source {
			continue
		}
		out = append(out, lead)
	}

	sortState := q.Sort
	if sortState.Field == "" {
		sortState.Field = DefaultSort.Field
	}
	if sortState.Order == "" {
		sortState.Order = DefaultSort.Order
	}
	slices.SortStableFunc(out, func(a, b Lead) int {
		c := compareBy(sortState.Field, a, b)
		if sortState.Order == SortDesc {
			return -c
		}
		return c
	})
	return out
}

func matchesSearch(lead Lead, raw, lowered string) bool {
	return strings.Contains(strings.ToLower(lead.Name), lowered) ||
		strings.Contains(strings.ToLower(lead.Email), lowered) ||
		strings.Contains(lead.Phone, raw) ||
		strings.Contains(stripPhoneFormatting(lead.Phone), raw)
}

func compareBy(field SortField, a, b Lead) int {
	switch field {
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByEmail:
		return strings.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
	case SortByLeadSource:
		return strings.Compare(strings.ToLower(a.LeadSource), strings.ToLower(b.LeadSource))
	}
	return 0
}

// Sources lists the distinct lead sources in order of first appearance.
func Sources(leads []Lead) []string {
	seen := make(map[string]struct{}, len(leads))
	out := []string{}
	for _, lead := range leads {
		if _, ok := seen[lead.LeadSource]; ok {
			continue
		}
		seen[lead.LeadSource] = struct{}{}
		out = append(out, lead.LeadSource)
	}
	return out
}

// Stats summarizes the collection for the dashboard cards.
type Stats struct {
	Total          int `json:"total"`
	ThisMonth      int `json:"this_month"`
	ConversionRate int `json:"conversion_rate"`
}

// ComputeStats counts leads created in now's calendar month (in now's location).
// ConversionRate is that count as a rounded percentage of the total.
func ComputeStats(leads []Lead, now time.Time) Stats {
	stats := Stats{Total: len(leads)}
	year, month, _ := now.Date()
	for _, lead := range leads {
		y, m, _ := lead.CreatedAt.In(now.Location()).Date()
		if y == year && m == month {
			stats.ThisMonth++
		}
	}
	if stats.Total > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.ThisMonth) / float64(stats.Total) * 100))
	}
	return stats
}
