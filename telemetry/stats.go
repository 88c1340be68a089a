package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/vecfield/components"
	"github.com/pthm-cable/vecfield/systems"
)

// FieldStats summarizes the angle field of one frame.
type FieldStats struct {
	Frame  int64   `csv:"frame"`
	TimeMS float64 `csv:"time_ms"`
	Type   string  `csv:"type"`
	Cells  int     `csv:"cells"`

	// Orientation
	MeanAngle float64 `csv:"mean_angle"` // Circular mean, degrees in [0, 360)
	Coherence float64 `csv:"coherence"`  // Mean resultant length in [0, 1]

	// Angular speed, degrees per frame along the shortest arc
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Render factors
	WidthMean  float64 `csv:"width_mean"`
	LengthMean float64 `csv:"length_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats calculates orientation and speed statistics for cells.
func ComputeFieldStats(cells []components.Cell) FieldStats {
	n := len(cells)
	fs := FieldStats{Cells: n}
	if n == 0 {
		return fs
	}

	angles := make([]float64, n)
	speeds := make([]float64, n)
	widths := make([]float64, n)
	lengths := make([]float64, n)
	var sumSin, sumCos float64
	for i := range cells {
		c := &cells[i]
		rad := systems.Rad(c.CurrentAngle)
		angles[i] = rad
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
		speeds[i] = math.Abs(systems.ShortestDelta(c.PreviousAngle, c.CurrentAngle))
		widths[i] = c.WidthFactor
		lengths[i] = c.LengthFactor
	}

	fs.MeanAngle = systems.Wrap360(systems.Deg(stat.CircularMean(angles, nil)))
	fs.Coherence = math.Hypot(sumSin, sumCos) / float64(n)

	sort.Float64s(speeds)
	fs.SpeedMean = stat.Mean(speeds, nil)
	fs.SpeedP50 = Percentile(speeds, 0.50)
	fs.SpeedP90 = Percentile(speeds, 0.90)
	fs.SpeedMax = speeds[n-1]

	fs.WidthMean = stat.Mean(widths, nil)
	fs.LengthMean = stat.Mean(lengths, nil)
	return fs
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.String("type", s.Type),
		slog.Int("cells", s.Cells),
		slog.Float64("mean_angle", s.MeanAngle),
		slog.Float64("coherence", s.Coherence),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}
