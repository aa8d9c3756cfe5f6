package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replay-coach/internal/domain"
)

func TestBuildTimeSeriesEmpty(t *testing.T) {
	series := BuildTimeSeries(nil, domain.PeriodWeekly)

	assert.Empty(t, series.Points)
	assert.Equal(t, 0, series.Totals.ReplayCount)
	assert.Zero(t, series.Totals.WinRate)
	assert.Nil(t, series.Totals.AvgSupplyScore)
	assert.Nil(t, series.Totals.AvgProductionScore)
	assert.Nil(t, series.Totals.AvgSupplyBlockSeconds)
	assert.Nil(t, series.Totals.AvgProductionIdleSeconds)
}

func TestBucketDate(t *testing.T) {
	wednesday := utc(2025, time.March, 12)

	tests := []struct {
		name   string
		in     time.Time
		period domain.Period
		want   time.Time
	}{
		{"daily keeps the day", wednesday, domain.PeriodDaily, utc(2025, time.March, 12)},
		{"weekly pins wednesday to monday", wednesday, domain.PeriodWeekly, utc(2025, time.March, 10)},
		{"weekly keeps monday", utc(2025, time.March, 10), domain.PeriodWeekly, utc(2025, time.March, 10)},
		{"weekly sunday belongs to previous week", utc(2025, time.March, 9), domain.PeriodWeekly, utc(2025, time.March, 3)},
		{"monthly pins to the first", wednesday, domain.PeriodMonthly, utc(2025, time.March, 1)},
		{"all-time collapses to one bucket", wednesday, domain.PeriodAllTime, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketDate(tt.in, tt.period))
		})
	}
}

func TestBucketDateNormalizesToUTC(t *testing.T) {
	tz := time.FixedZone("UTC+10", 10*3600)
	// 2025-03-10 02:00 +10 is still 2025-03-09 UTC, a Sunday.
	local := time.Date(2025, time.March, 10, 2, 0, 0, 0, tz)

	assert.Equal(t, utc(2025, time.March, 3), BucketDate(local, domain.PeriodWeekly))
}

func TestBuildTimeSeriesWeeklyGrouping(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		makeEntry("a", domain.ResultWin, utc(2025, time.March, 10)),  // Monday
		makeEntry("b", domain.ResultLoss, utc(2025, time.March, 12)), // same ISO week
		makeEntry("c", domain.ResultWin, utc(2025, time.March, 17)),  // next week
	}

	series := BuildTimeSeries(entries, domain.PeriodWeekly)

	require.Len(t, series.Points, 2)
	assert.Equal(t, utc(2025, time.March, 10), series.Points[0].Date)
	assert.Equal(t, []string{"a", "b"}, series.Points[0].ReplayIDs)
	assert.Equal(t, 2, series.Points[0].ReplayCount)
	assert.Equal(t, 1, series.Points[0].Wins)
	assert.Equal(t, 1, series.Points[0].Losses)
	assert.InDelta(t, 50, series.Points[0].WinRate, 1e-9)

	assert.Equal(t, utc(2025, time.March, 17), series.Points[1].Date)
	assert.Equal(t, 1, series.Points[1].ReplayCount)

	assert.Equal(t, 3, series.Totals.ReplayCount)
	assert.InDelta(t, 100.0*2/3, series.Totals.WinRate, 1e-9)
}

func TestBuildTimeSeriesPointsSorted(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		makeEntry("late", domain.ResultWin, utc(2025, time.May, 5)),
		makeEntry("early", domain.ResultWin, utc(2025, time.January, 6)),
		makeEntry("mid", domain.ResultWin, utc(2025, time.March, 3)),
	}

	series := BuildTimeSeries(entries, domain.PeriodMonthly)

	require.Len(t, series.Points, 3)
	assert.True(t, series.Points[0].Date.Before(series.Points[1].Date))
	assert.True(t, series.Points[1].Date.Before(series.Points[2].Date))
}

func TestBuildTimeSeriesNullSafeAverages(t *testing.T) {
	scored := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	scored.SupplyScore = ptrInt(80)
	scored.SupplyBlockSeconds = ptrFloat(12)
	unscored := makeEntry("b", domain.ResultLoss, utc(2025, time.March, 11))

	series := BuildTimeSeries([]domain.ReplayIndexEntry{scored, unscored}, domain.PeriodWeekly)

	require.Len(t, series.Points, 1)
	point := series.Points[0]
	// The unscored entry contributes to neither the sum nor the divisor.
	require.NotNil(t, point.AvgSupplyScore)
	assert.InDelta(t, 80, *point.AvgSupplyScore, 1e-9)
	require.NotNil(t, point.AvgSupplyBlockSeconds)
	assert.InDelta(t, 12, *point.AvgSupplyBlockSeconds, 1e-9)
	assert.Nil(t, point.AvgProductionScore)
	assert.Nil(t, point.AvgProductionIdleSeconds)
}

func TestBuildTimeSeriesDateFallback(t *testing.T) {
	entry := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	entry.GameTime = nil
	entry.UploadedAt = utc(2025, time.April, 2)

	series := BuildTimeSeries([]domain.ReplayIndexEntry{entry}, domain.PeriodDaily)

	require.Len(t, series.Points, 1)
	assert.Equal(t, utc(2025, time.April, 2), series.Points[0].Date)
}

func TestBuildTimeSeriesUndatedCountsTowardTotalsOnly(t *testing.T) {
	dated := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	undated := makeEntry("b", domain.ResultLoss, utc(2025, time.March, 11))
	undated.GameTime = nil
	undated.UploadedAt = time.Time{}

	series := BuildTimeSeries([]domain.ReplayIndexEntry{dated, undated}, domain.PeriodDaily)

	require.Len(t, series.Points, 1)
	assert.Equal(t, 1, series.Points[0].ReplayCount)
	assert.Equal(t, 2, series.Totals.ReplayCount)
	assert.Equal(t, 1, series.Totals.Losses)
}

func TestBuildMatchupTimeSeries(t *testing.T) {
	tvz := makeEntry("a", domain.ResultWin, utc(2025, time.March, 10))
	tvp := makeEntry("b", domain.ResultLoss, utc(2025, time.March, 10))
	tvp.Matchup = "TvP"

	series := BuildMatchupTimeSeries([]domain.ReplayIndexEntry{tvz, tvp}, "TvZ", domain.PeriodDaily)

	require.Len(t, series.Points, 1)
	assert.Equal(t, []string{"a"}, series.Points[0].ReplayIDs)
	// Totals are scoped to the filtered matchup as well.
	assert.Equal(t, 1, series.Totals.ReplayCount)
	assert.InDelta(t, 100, series.Totals.WinRate, 1e-9)
}

func TestBuildTimeSeriesAllTime(t *testing.T) {
	entries := []domain.ReplayIndexEntry{
		makeEntry("a", domain.ResultWin, utc(2024, time.December, 30)),
		makeEntry("b", domain.ResultLoss, utc(2025, time.June, 15)),
	}

	series := BuildTimeSeries(entries, domain.PeriodAllTime)

	require.Len(t, series.Points, 1)
	assert.Equal(t, 2, series.Points[0].ReplayCount)
}
