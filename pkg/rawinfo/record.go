// Package rawinfo extracts shooting metadata from raw photo files and reports
// per-file details along with aggregate statistics across a batch.
package rawinfo

import (
	"time"
)

// Record is the shooting metadata accumulated for each photo in a batch.
type Record struct {
	Taken time.Time

	ISO         float64
	Shutter     float64 // seconds
	FocalLength float64 // millimeters
	Aperture    float64 // f-number

	Resolution uint64 // width * height

	Lens   string
	Camera string
}

// Photo is a Record plus the fields that are only used for per-file display.
type Photo struct {
	Record

	Path string

	Make  string
	Model string

	LensID     int64
	LensSerial string
	BodySerial string
	Software   string

	Width     int64
	Height    int64
	RawWidth  int64
	RawHeight int64

	Vendor VendorInfo
}

// Sections selects which parts of the per-file block are printed.
type Sections struct {
	Camera     bool
	Lens       bool
	Size       bool
	Timestamp  bool
	Software   bool
	CameraType bool
	Quality    bool
}

// AllSections enables every per-file section.
var AllSections = Sections{
	Camera:     true,
	Lens:       true,
	Size:       true,
	Timestamp:  true,
	Software:   true,
	CameraType: true,
	Quality:    true,
}

// Config holds configuration for rawinfo.
type Config struct {
	Dirs  []string
	Files []string

	Sections Sections
	Silent   bool

	Jobs      int
	KeepGoing bool

	Watch  bool
	Settle time.Duration
}
