package rawinfo

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"
)

// Native extracts metadata in-process, without exiftool. It has no makernote
// quality codes, so vendor quality is reported as unknown.
type Native struct{}

// NewNative returns a Native extractor.
func NewNative() *Native {
	return &Native{}
}

// Close implements Extractor.
func (*Native) Close() error { return nil }

// Extract implements Extractor.
func (*Native) Extract(path string) (*Photo, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractError{Path: path, Err: err}
	}
	defer f.Close()

	ex, err := decodeSafe(f, path)
	if err != nil {
		return nil, &ExtractError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)}
	}

	if strings.TrimSpace(ex.Make) == "" {
		return nil, &ExtractError{Path: path, Err: fmt.Errorf("no camera make: %w", ErrUnsupportedFormat)}
	}

	return photoFromExif(path, ex), nil
}

// decodeSafe turns decoder panics on malformed files into errors.
func decodeSafe(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	return imagemeta.Decode(r)
}

func photoFromExif(path string, ex exif2.Exif) *Photo {
	ph := &Photo{
		Path:       path,
		Make:       strings.TrimSpace(ex.Make),
		Model:      strings.TrimSpace(ex.Model),
		LensSerial: strings.TrimSpace(ex.LensSerial),
		BodySerial: strings.TrimSpace(ex.CameraSerial),
		Software:   strings.TrimSpace(ex.Software),
		Width:      int64(ex.ImageWidth),
		Height:     int64(ex.ImageHeight),
	}
	ph.RawWidth = ph.Width
	ph.RawHeight = ph.Height

	ph.ISO = float64(ex.ISOSpeed)
	ph.Shutter = float64(ex.ExposureTime)
	ph.FocalLength = float64(ex.FocalLength)
	ph.Aperture = float64(ex.FNumber)
	ph.Resolution = uint64(ph.Width * ph.Height)
	ph.Lens = FormatLens(ex.LensMake, ex.LensModel)
	ph.Camera = FormatCamera(ph.Make, ph.Model)
	ph.Vendor = VendorFor(ph.Make, ph.Model, -1)

	ph.Taken = undated
	// Keep the camera's wall-clock time, read as local time like exiftool dates.
	if t := ex.DateTimeOriginal(); !t.IsZero() {
		ph.Taken = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local)
	}

	return ph
}
