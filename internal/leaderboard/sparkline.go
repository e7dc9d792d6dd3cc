package leaderboard

import (
	"fmt"
	"strings"
)

// SparklinePath renders a profit series as an SVG path scaled into a
// width x height viewbox. A flat series draws a horizontal line rather than
// dividing by a zero range. Returns "" for an empty series.
func SparklinePath(values []float64, width, height float64) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := width
	if len(values) > 1 {
		step = width / float64(len(values)-1)
	}

	segments := make([]string, len(values))
	for i, v := range values {
		x := float64(i) * step
		y := height - ((v-min)/rng)*height
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		segments[i] = fmt.Sprintf("%s %.2f %.2f", cmd, x, y)
	}
	return strings.Join(segments, " ")
}
