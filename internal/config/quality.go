package config

import (
	"fmt"
	"strings"
)

// Quality: текущий пресет качества отрисовки
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

type qualityRow struct {
	name         string
	lifeMult     float64
	countScale   float64
	segmentScale float64
	popupSkip    float64
}

var qualityTable = [...]qualityRow{
	QualityLow:    {"low", 0.7, 0.4, 0.5, 0.7},
	QualityMedium: {"medium", 0.85, 0.7, 0.75, 0.4},
	QualityHigh:   {"high", 1.0, 1.0, 1.0, 0},
}

// ParseQuality maps "low", "medium" or "high" (any case) to a Quality.
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for q, row := range qualityTable {
		if row.name == s {
			return Quality(q), nil
		}
	}
	return QualityHigh, fmt.Errorf("unknown quality %q", s)
}

func (q Quality) row() qualityRow {
	if q < QualityLow || q > QualityHigh {
		return qualityTable[QualityHigh]
	}
	return qualityTable[q]
}

func (q Quality) String() string { return q.row().name }

// LifeMultiplier scales effect lifetimes.
func (q Quality) LifeMultiplier() float64 { return q.row().lifeMult }

// CountScale scales particle and branch counts.
func (q Quality) CountScale() float64 { return q.row().countScale }

// SegmentScale scales geometry tessellation.
func (q Quality) SegmentScale() float64 { return q.row().segmentScale }

// PopupSkipChance is the probability a damage popup is dropped.
func (q Quality) PopupSkipChance() float64 { return q.row().popupSkip }

// Count scales n and never returns less than 1.
func (q Quality) Count(n int) int {
	c := int(float64(n)*q.CountScale() + 0.5)
	if c < 1 {
		return 1
	}
	return c
}

// Segments scales a tessellation count and never returns less than min.
func (q Quality) Segments(n, min int) int {
	s := int(float64(n)*q.SegmentScale() + 0.5)
	if s < min {
		return min
	}
	return s
}
