package tsync

import (
	"math"

	"github.com/edlkit/edl2moseq/internal/edl"
)

// DroppedFrameFraction estimates what fraction of frames were dropped
// during acquisition, given the recorded timestamps and the camera's
// nominal frame rate. It compares the rate implied by the mean
// frame-to-frame interval against fps.
//
// The unit check is a best-effort content sniff: when the mean interval
// exceeds 10 the series is assumed to be in milliseconds and every
// difference is divided by scale to bring it into seconds.
//
// Series with fewer than 2 samples, or with a zero mean interval
// (duplicate consecutive timestamps), cannot yield a rate; both fail
// with a validation error rather than producing a non-finite result.
func DroppedFrameFraction(series []float64, fps, scale float64) (float64, error) {
	if len(series) < 2 {
		return 0, edl.Validation("timestamp series has %d samples, need at least 2", len(series))
	}

	diffs := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		diffs[i-1] = series[i] - series[i-1]
	}

	if mean(diffs) > 10 {
		for i := range diffs {
			diffs[i] /= scale
		}
	}

	avgTime := mean(diffs)
	if avgTime == 0 {
		return 0, edl.Validation("timestamp series has a zero mean frame interval")
	}

	expRate := 1 / avgTime
	return math.Abs(fps-expRate) / fps, nil
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
