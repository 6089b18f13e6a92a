package rawinfo

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Stats
	}{
		{"odd", []float64{3, 1, 2}, Stats{Min: 1, Max: 3, Avg: 2, Median: 2}},
		{"even takes upper median", []float64{4, 1, 3, 2}, Stats{Min: 1, Max: 4, Avg: 2.5, Median: 3}},
		{"single", []float64{7}, Stats{Min: 7, Max: 7, Avg: 7, Median: 7}},
		{"two", []float64{200, 100}, Stats{Min: 100, Max: 200, Avg: 150, Median: 200}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Describe(tc.in)
			if err != nil {
				t.Fatalf("Describe: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("stats mismatch (-want +got):\n%s", diff)
			}
			if !slices.IsSorted(tc.in) {
				t.Errorf("values not sorted in place: %v", tc.in)
			}
		})
	}
}

func TestDescribeEmpty(t *testing.T) {
	if _, err := Describe(nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("Describe(nil) = %v, want %v", err, ErrEmptyBatch)
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	s, err := Summarize(NewBatch(0))
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("Summarize() error = %v, want %v", err, ErrEmptyBatch)
	}
	if s != nil {
		t.Errorf("Summarize() returned a summary for an empty batch: %+v", s)
	}
}

func TestSummarizeMismatch(t *testing.T) {
	b := Fold(sampleRecords())
	b.FocalLengths = b.FocalLengths[:1]

	s, err := Summarize(b)
	if !errors.Is(err, ErrSeriesMismatch) || s != nil {
		t.Errorf("Summarize() = %v, %v; want nil, %v", s, err, ErrSeriesMismatch)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(Fold(sampleRecords()))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if !s.First.Equal(t0) || !s.Last.Equal(t0.Add(90*time.Second)) {
		t.Errorf("time frame = %v - %v", s.First, s.Last)
	}

	names := []string{}
	for _, se := range s.Series {
		names = append(names, se.Name)
	}
	if diff := cmp.Diff([]string{"ISO speeds", "Shutter speeds", "Focal lengths", "Aperture", "Resolutions"}, names); diff != "" {
		t.Errorf("series order mismatch (-want +got):\n%s", diff)
	}

	iso := s.Series[0].Stats
	if diff := cmp.Diff(Stats{Min: 100, Max: 400, Avg: 700.0 / 3, Median: 200}, iso, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ISO stats mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]Tally{{"A", 2}, {"B", 1}}, s.Lenses); diff != "" {
		t.Errorf("lenses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Tally{{"X", 2}, {"Y", 1}}, s.Cameras); diff != "" {
		t.Errorf("cameras mismatch (-want +got):\n%s", diff)
	}
}
