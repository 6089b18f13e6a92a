package rawinfo

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

var (
	// ErrEmptyBatch means there is nothing to summarize.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrSeriesMismatch means the numeric series have diverged in length, which is an ingestion bug.
	ErrSeriesMismatch = errors.New("series length mismatch")
)

// Batch accumulates one Record per processed photo.
//
// The six sequences always share the same length, and the lens and camera
// counts each add up to that length. A Batch is not safe for concurrent use.
type Batch struct {
	Timestamps    []time.Time
	ISOSpeeds     []float64
	ShutterSpeeds []float64
	FocalLengths  []float64
	Apertures     []float64
	Resolutions   []float64

	Lenses  map[string]int
	Cameras map[string]int
}

// NewBatch returns an empty batch sized for capacity photos.
func NewBatch(capacity int) *Batch {
	b := &Batch{
		Lenses:  map[string]int{},
		Cameras: map[string]int{},
	}
	b.Reserve(capacity)
	return b
}

// Fold ingests records into a new batch.
func Fold(records []Record) *Batch {
	b := NewBatch(len(records))
	for _, r := range records {
		b.Ingest(r)
	}
	return b
}

// Reserve grows the capacity of the sequences (not the tallies) to hold n photos.
func (b *Batch) Reserve(n int) {
	b.Timestamps = grow(b.Timestamps, n)
	b.ISOSpeeds = grow(b.ISOSpeeds, n)
	b.ShutterSpeeds = grow(b.ShutterSpeeds, n)
	b.FocalLengths = grow(b.FocalLengths, n)
	b.Apertures = grow(b.Apertures, n)
	b.Resolutions = grow(b.Resolutions, n)
}

func grow[T any](s []T, n int) []T {
	if n <= cap(s) {
		return s
	}
	ns := make([]T, len(s), n)
	copy(ns, s)
	return ns
}

// Ingest appends a record to every sequence and bumps its lens and camera counts.
func (b *Batch) Ingest(r Record) {
	if b.Lenses == nil {
		b.Lenses = map[string]int{}
	}
	if b.Cameras == nil {
		b.Cameras = map[string]int{}
	}

	b.Timestamps = append(b.Timestamps, r.Taken)
	b.ISOSpeeds = append(b.ISOSpeeds, r.ISO)
	b.ShutterSpeeds = append(b.ShutterSpeeds, r.Shutter)
	b.FocalLengths = append(b.FocalLengths, r.FocalLength)
	b.Apertures = append(b.Apertures, r.Aperture)
	b.Resolutions = append(b.Resolutions, float64(r.Resolution))
	b.Lenses[r.Lens]++
	b.Cameras[r.Camera]++
}

// Len returns the number of ingested photos.
func (b *Batch) Len() int {
	return len(b.ISOSpeeds)
}

// Validate checks that the batch is non-empty and its series are consistent.
func (b *Batch) Validate() error {
	if b == nil {
		return fmt.Errorf("nil batch: %w", ErrEmptyBatch)
	}

	empty := []struct {
		name string
		n    int
	}{
		{"timestamps", len(b.Timestamps)},
		{"iso_speeds", len(b.ISOSpeeds)},
		{"shutter_speeds", len(b.ShutterSpeeds)},
		{"focal_lengths", len(b.FocalLengths)},
		{"aperture_values", len(b.Apertures)},
		{"resolutions", len(b.Resolutions)},
		{"lenses", len(b.Lenses)},
		{"cameras", len(b.Cameras)},
	}
	for _, e := range empty {
		if e.n == 0 {
			return fmt.Errorf("%s is empty: %w", e.name, ErrEmptyBatch)
		}
	}

	n := len(b.ISOSpeeds)
	sizes := []struct {
		name string
		n    int
	}{
		{"timestamps", len(b.Timestamps)},
		{"shutter_speeds", len(b.ShutterSpeeds)},
		{"focal_lengths", len(b.FocalLengths)},
		{"aperture_values", len(b.Apertures)},
		{"resolutions", len(b.Resolutions)},
	}
	for _, s := range sizes {
		if s.n != n {
			return fmt.Errorf("len(%s)=%d, len(iso_speeds)=%d: %w", s.name, s.n, n, ErrSeriesMismatch)
		}
	}

	return nil
}

// Clone returns a deep copy of b.
func (b *Batch) Clone() *Batch {
	c := &Batch{
		Timestamps:    slices.Clone(b.Timestamps),
		ISOSpeeds:     slices.Clone(b.ISOSpeeds),
		ShutterSpeeds: slices.Clone(b.ShutterSpeeds),
		FocalLengths:  slices.Clone(b.FocalLengths),
		Apertures:     slices.Clone(b.Apertures),
		Resolutions:   slices.Clone(b.Resolutions),
		Lenses:        maps.Clone(b.Lenses),
		Cameras:       maps.Clone(b.Cameras),
	}
	return c
}
