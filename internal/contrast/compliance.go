package contrast

import (
	"fmt"
	"math"
)

// Level is a WCAG 2.1 compliance level.
type Level string

// WCAG 2.1 compliance levels. A is the large text (3:1) level.
const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelA    Level = "A"
	LevelFail Level = "Fail"
)

// Label is an informational APCA readability label.
type Label string

const (
	LabelPerfect      Label = "Perfect"
	LabelExcellent    Label = "Excellent"
	LabelGood         Label = "Good"
	LabelAcceptable   Label = "Acceptable"
	LabelMinimal      Label = "Minimal"
	LabelInsufficient Label = "Insufficient"
)

// WCAGLevel maps a WCAG 2.1 ratio to its compliance level.
// Bounds are inclusive.
func WCAGLevel(ratio float64) Level {
	switch {
	case ratio >= 7:
		return LevelAAA
	case ratio >= 4.5:
		return LevelAA
	case ratio >= 3:
		return LevelA
	default:
		return LevelFail
	}
}

// APCALabel maps an APCA Lc value to a readability label. The sign is
// ignored. Labels never decide whether a pair is accepted.
func APCALabel(lc float64) Label {
	lc = math.Abs(lc)
	switch {
	case lc >= 90:
		return LabelPerfect
	case lc >= 75:
		return LabelExcellent
	case lc >= 60:
		return LabelGood
	case lc >= 45:
		return LabelAcceptable
	case lc >= 30:
		return LabelMinimal
	default:
		return LabelInsufficient
	}
}

// Classify returns the level or label for a contrast value under alg.
func Classify(value float64, alg Algorithm) string {
	if alg == APCA {
		return string(APCALabel(value))
	}
	return string(WCAGLevel(value))
}

// MeterColour returns the hex colour a meter uses to indicate value.
func MeterColour(value float64, alg Algorithm) string {
	if alg == APCA {
		v := math.Abs(value)
		switch {
		case v >= 90:
			return "#10b981"
		case v >= 75:
			return "#22c55e"
		case v >= 60:
			return "#22d3ee"
		case v >= 45:
			return "#f59e0b"
		default:
			return "#ef4444"
		}
	}
	switch WCAGLevel(value) {
	case LevelAAA:
		return "#10b981"
	case LevelAA:
		return "#22c55e"
	case LevelA:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// Passes reports whether value meets threshold. The comparison is
// inclusive so a pair exactly at the threshold is accepted.
func Passes(value, threshold float64) bool {
	return value >= threshold
}

// ThresholdOption is a named threshold offered for an algorithm.
type ThresholdOption struct {
	Value float64
	Label string
}

// ThresholdOptions returns the standard thresholds for an algorithm in
// ascending order.
func ThresholdOptions(alg Algorithm) []ThresholdOption {
	if alg == APCA {
		return []ThresholdOption{
			{Value: 60, Label: "Lc 60 (Body text minimum)"},
			{Value: 75, Label: "Lc 75 (Body text preferred)"},
			{Value: 90, Label: "Lc 90 (Optimal)"},
		}
	}
	return []ThresholdOption{
		{Value: 3, Label: "3:1 (AA Large)"},
		{Value: 4.5, Label: "4.5:1 (AA)"},
		{Value: 7, Label: "7:1 (AAA)"},
	}
}

// DefaultThreshold returns the threshold used when none is configured.
func DefaultThreshold(alg Algorithm) float64 {
	if alg == APCA {
		return 90
	}
	return 4.5
}

// MeterMarkers returns the reference values drawn on a contrast meter.
func MeterMarkers(alg Algorithm) []float64 {
	if alg == APCA {
		return []float64{45, 60, 75, 90}
	}
	return []float64{3, 4.5, 7}
}

// meterMax returns the value that fills a contrast meter.
func meterMax(alg Algorithm) float64 {
	if alg == APCA {
		return 110
	}
	return 10
}

// MeterPercent returns how full a contrast meter is for value, in [0, 100].
func MeterPercent(value float64, alg Algorithm) float64 {
	p := math.Abs(value) / meterMax(alg) * 100
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(p, 100)
}

// Describe formats a contrast value with its classification,
// e.g. "AA (5.12:1)" or "Good (63 Lc)".
func Describe(value float64, alg Algorithm) string {
	if alg == APCA {
		return fmt.Sprintf("%s (%.0f Lc)", APCALabel(value), math.Abs(value))
	}
	return fmt.Sprintf("%s (%.2f:1)", WCAGLevel(value), value)
}

// Format formats a bare contrast value the way Describe does, without the
// classification.
func Format(value float64, alg Algorithm) string {
	if alg == APCA {
		return fmt.Sprintf("%.0f Lc", math.Abs(value))
	}
	return fmt.Sprintf("%.2f:1", value)
}
