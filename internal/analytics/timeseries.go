package analytics

import (
	"sort"
	"time"

	"replay-coach/internal/domain"
)

// BuildTimeSeries buckets index entries by the given period and computes
// per-bucket aggregates plus totals over the whole input set.
//
// An entry's date is its game time when present, else its upload time;
// entries with neither are excluded from bucketing but still count toward
// the totals. All calendar math is UTC; weekly buckets are ISO weeks
// pinned to their Monday.
func BuildTimeSeries(entries []domain.ReplayIndexEntry, period domain.Period) domain.TimeSeriesData {
	buckets := make(map[time.Time]*bucketAccum)
	var order []time.Time

	for _, e := range entries {
		date, ok := entryDate(e)
		if !ok {
			continue
		}
		key := BucketDate(date, period)
		acc := buckets[key]
		if acc == nil {
			acc = &bucketAccum{}
			buckets[key] = acc
			order = append(order, key)
		}
		acc.add(e)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	series := domain.TimeSeriesData{Period: period}
	for _, key := range order {
		acc := buckets[key]
		series.Points = append(series.Points, domain.TimeSeriesDataPoint{
			Date:           key,
			AggregateStats: acc.stats(),
			ReplayIDs:      acc.ids,
		})
	}

	var totals bucketAccum
	for _, e := range entries {
		totals.add(e)
	}
	series.Totals = totals.stats()

	return series
}

// BuildMatchupTimeSeries is the matchup-scoped variant: it pre-filters
// entries by canonical matchup string, then buckets and aggregates the
// same way.
func BuildMatchupTimeSeries(entries []domain.ReplayIndexEntry, matchup string, period domain.Period) domain.TimeSeriesData {
	filtered := make([]domain.ReplayIndexEntry, 0, len(entries))
	for _, e := range entries {
		if e.Matchup == matchup {
			filtered = append(filtered, e)
		}
	}
	return BuildTimeSeries(filtered, period)
}

// BucketDate maps a date to its bucket's representative date for the
// given period: the calendar day, the ISO week's Monday, the first of the
// month, or the single synthetic all-time bucket.
func BucketDate(t time.Time, period domain.Period) time.Time {
	t = t.UTC()
	switch period {
	case domain.PeriodWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// Weekday is Sunday-based; shift so Monday is day 0.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case domain.PeriodAllTime:
		return time.Time{}
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func entryDate(e domain.ReplayIndexEntry) (time.Time, bool) {
	if e.GameTime != nil && !e.GameTime.IsZero() {
		return *e.GameTime, true
	}
	if !e.UploadedAt.IsZero() {
		return e.UploadedAt, true
	}
	return time.Time{}, false
}

// bucketAccum accumulates one bucket's counters and null-safe averages.
// Absent metric values are excluded from both the sum and the divisor; an
// average with no contributing values stays nil instead of reading 0.
type bucketAccum struct {
	count  int
	wins   int
	ids    []string
	supply avgAccum
	prod   avgAccum
	block  avgAccum
	idle   avgAccum
}

func (a *bucketAccum) add(e domain.ReplayIndexEntry) {
	a.count++
	if e.Result == domain.ResultWin {
		a.wins++
	}
	a.ids = append(a.ids, e.ID)
	a.supply.addInt(e.SupplyScore)
	a.prod.addInt(e.ProductionScore)
	a.block.add(e.SupplyBlockSeconds)
	a.idle.add(e.ProductionIdleSeconds)
}

func (a *bucketAccum) stats() domain.AggregateStats {
	s := domain.AggregateStats{
		ReplayCount: a.count,
		Wins:        a.wins,
		Losses:      a.count - a.wins,
	}
	if a.count > 0 {
		s.WinRate = float64(a.wins) / float64(a.count) * 100
	}
	s.AvgSupplyScore = a.supply.average()
	s.AvgProductionScore = a.prod.average()
	s.AvgSupplyBlockSeconds = a.block.average()
	s.AvgProductionIdleSeconds = a.idle.average()
	return s
}

type avgAccum struct {
	sum float64
	n   int
}

func (a *avgAccum) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.n++
}

func (a *avgAccum) addInt(v *int) {
	if v == nil {
		return
	}
	a.sum += float64(*v)
	a.n++
}

func (a *avgAccum) average() *float64 {
	if a.n == 0 {
		return nil
	}
	avg := a.sum / float64(a.n)
	return &avg
}
