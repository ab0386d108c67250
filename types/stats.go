package types

// StatKind selects which counter a stats update increments.
type StatKind string

const (
	StatArticle StatKind = "article"
	StatSNS     StatKind = "sns"
)

// DayStats holds one calendar day's counts.
type DayStats struct {
	Date     string `json:"date"`
	Articles int    `json:"articles"`
	SnsPosts int    `json:"snsPosts"`
}

// Stats holds running totals plus a per-day history ordered by date.
type Stats struct {
	Articles int        `json:"articles"`
	SnsPosts int        `json:"snsPosts"`
	History  []DayStats `json:"history"`
}

// Record increments the total for kind and the bucket for day (YYYY-MM-DD),
// appending a new bucket when day has not been seen. Past buckets are never touched.
func (s *Stats) Record(kind StatKind, day string) {
	var entry *DayStats
	for i := range s.History {
		if s.History[i].Date == day {
			entry = &s.History[i]
			break
		}
	}
	if entry == nil {
		s.History = append(s.History, DayStats{Date: day})
		entry = &s.History[len(s.History)-1]
	}

	switch kind {
	case StatArticle:
		s.Articles++
		entry.Articles++
	case StatSNS:
		s.SnsPosts++
		entry.SnsPosts++
	}
}

// Day returns the bucket for day, or a zero bucket.
func (s *Stats) Day(day string) DayStats {
	for _, h := range s.History {
		if h.Date == day {
			return h
		}
	}
	return DayStats{Date: day}
}
