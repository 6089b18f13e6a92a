package rawinfo

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Stats describes a numeric series.
type Stats struct {
	Min    float64
	Max    float64
	Avg    float64
	Median float64
}

// SeriesStats is a described series along with how to display its values.
type SeriesStats struct {
	Name   string
	Format func(float64) string
	Stats
}

// Tally is the photo count for a lens or camera.
type Tally struct {
	Name  string
	Count int
}

// Summary is the aggregate report for a batch.
type Summary struct {
	Count int
	First time.Time
	Last  time.Time

	Series  []SeriesStats
	Lenses  []Tally
	Cameras []Tally
}

// Describe sorts values in place and returns their statistics.
// For an even count the median is the upper of the two middle values.
func Describe(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, ErrEmptyBatch
	}

	slices.Sort(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return Stats{
		Min:    values[0],
		Max:    values[len(values)-1],
		Avg:    sum / float64(len(values)),
		Median: values[len(values)/2],
	}, nil
}

// Summarize validates b and computes its summary. The series of b are left sorted.
func Summarize(b *Batch) (*Summary, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	sort.Slice(b.Timestamps, func(i, j int) bool {
		return b.Timestamps[i].Before(b.Timestamps[j])
	})

	s := &Summary{
		Count:   b.Len(),
		First:   b.Timestamps[0],
		Last:    b.Timestamps[len(b.Timestamps)-1],
		Lenses:  tallies(b.Lenses),
		Cameras: tallies(b.Cameras),
	}

	series := []struct {
		name   string
		values []float64
		format func(float64) string
	}{
		{"ISO speeds", b.ISOSpeeds, FormatISO},
		{"Shutter speeds", b.ShutterSpeeds, FormatShutter},
		{"Focal lengths", b.FocalLengths, FormatFocalLength},
		{"Aperture", b.Apertures, FormatAperture},
		{"Resolutions", b.Resolutions, func(v float64) string { return FormatResolution(uint64(v)) }},
	}

	for _, se := range series {
		st, err := Describe(se.values)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", se.name, err)
		}
		s.Series = append(s.Series, SeriesStats{Name: se.name, Format: se.format, Stats: st})
	}

	return s, nil
}

// tallies returns counts ordered by name.
func tallies(m map[string]int) []Tally {
	ts := make([]Tally, 0, len(m))
	for k, v := range m {
		ts = append(ts, Tally{Name: k, Count: v})
	}
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].Name < ts[j].Name
	})
	return ts
}
