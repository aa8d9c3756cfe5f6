package analytics

import (
	"fmt"
	"math"
	"sort"

	"replay-coach/internal/domain"
)

// InterpolateCheckpoints fills a dense, fixed-interval timeline from a
// sparse timestamp-to-value mapping. Samples run from 0 to duration
// inclusive; between known checkpoints the value is linearly interpolated
// by elapsed-time ratio and rounded; outside the known range the nearest
// checkpoint's value is flat-filled. No checkpoints yields an empty
// result, one checkpoint a constant line.
//
// Negative duration or a non-positive interval is a caller bug and fails
// hard; everything else degrades gracefully.
func InterpolateCheckpoints(checkpoints map[int]float64, durationSeconds, intervalSeconds int) ([]domain.TimelinePoint, error) {
	if durationSeconds < 0 {
		return nil, fmt.Errorf("negative duration %d", durationSeconds)
	}
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("non-positive interval %d", intervalSeconds)
	}
	if len(checkpoints) == 0 {
		return nil, nil
	}

	times := make([]int, 0, len(checkpoints))
	for t := range checkpoints {
		times = append(times, t)
	}
	sort.Ints(times)

	points := make([]domain.TimelinePoint, 0, durationSeconds/intervalSeconds+1)
	for t := 0; t <= durationSeconds; t += intervalSeconds {
		points = append(points, domain.TimelinePoint{
			Time:  t,
			Value: sampleAt(t, times, checkpoints),
		})
	}
	return points, nil
}

func sampleAt(t int, times []int, checkpoints map[int]float64) int {
	// First known time >= t.
	i := sort.SearchInts(times, t)

	switch {
	case i < len(times) && times[i] == t:
		return int(math.Round(checkpoints[t]))
	case i == 0:
		// Before the earliest checkpoint: flat-fill backwards.
		return int(math.Round(checkpoints[times[0]]))
	case i == len(times):
		// Past the latest checkpoint: flat-fill forwards.
		return int(math.Round(checkpoints[times[len(times)-1]]))
	}

	below, above := times[i-1], times[i]
	ratio := float64(t-below) / float64(above-below)
	value := checkpoints[below] + (checkpoints[above]-checkpoints[below])*ratio
	return int(math.Round(value))
}
