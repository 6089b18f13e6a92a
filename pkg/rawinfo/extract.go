package rawinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// ErrUnsupportedFormat means the file is not a decodable camera raw file.
var ErrUnsupportedFormat = errors.New("unsupported format")

var exifDate = "2006:01:02 15:04:05"

// undated is the capture time reported for files without one.
var undated = time.Unix(0, 0)

// Extractor reads the metadata of a single raw file.
type Extractor interface {
	Extract(path string) (*Photo, error)
	Close() error
}

// ExtractError is returned when a file cannot be extracted.
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// checkPath fails unless path is an existing regular file.
func checkPath(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return &ExtractError{Path: path, Err: err}
	}
	if !st.Mode().IsRegular() {
		return &ExtractError{Path: path, Err: fmt.Errorf("not a regular file: %w", ErrUnsupportedFormat)}
	}
	return nil
}

// parseExifDate parses an EXIF date in local time, ignoring any sub-second or zone suffix.
func parseExifDate(ds string) (time.Time, error) {
	ds = strings.TrimSpace(ds)
	if len(ds) > len(exifDate) {
		ds = ds[:len(exifDate)]
	}
	return time.ParseInLocation(exifDate, ds, time.Local)
}

// ExifTool extracts metadata with a long-lived exiftool process.
type ExifTool struct {
	et *exiftool.Exiftool
}

// NewExifTool starts exiftool. An empty binary uses exiftool from $PATH.
func NewExifTool(binary string) (*ExifTool, error) {
	opts := []func(*exiftool.Exiftool) error{exiftool.NoPrintConversion()}
	if binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	return &ExifTool{et: et}, nil
}

// Close stops the exiftool process.
func (e *ExifTool) Close() error {
	return e.et.Close()
}

// Extract implements Extractor.
func (e *ExifTool) Extract(path string) (*Photo, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	fis := e.et.ExtractMetadata(path)
	if len(fis) == 0 {
		return nil, &ExtractError{Path: path, Err: errors.New("no metadata returned")}
	}

	fi := fis[0]
	if fi.Err != nil {
		return nil, &ExtractError{Path: path, Err: fi.Err}
	}

	ph, err := photoFromFields(path, fi)
	if err != nil {
		return nil, &ExtractError{Path: path, Err: err}
	}
	return ph, nil
}

func firstString(fi exiftool.FileMetadata, keys ...string) string {
	for _, k := range keys {
		if v, err := fi.GetString(k); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func firstFloat(fi exiftool.FileMetadata, keys ...string) float64 {
	for _, k := range keys {
		if v, err := fi.GetFloat(k); err == nil {
			return v
		}
	}
	return 0
}

func firstInt(fi exiftool.FileMetadata, def int64, keys ...string) int64 {
	for _, k := range keys {
		if v, err := fi.GetInt(k); err == nil {
			return v
		}
	}
	return def
}

// photoFromFields maps exiftool fields, read without print conversion, to a Photo.
func photoFromFields(path string, fi exiftool.FileMetadata) (*Photo, error) {
	for k, v := range fi.Fields {
		klog.V(2).Infof("%q=%v", k, v)
	}

	mk := firstString(fi, "Make")
	if mk == "" {
		return nil, fmt.Errorf("no camera make: %w", ErrUnsupportedFormat)
	}

	ph := &Photo{
		Path:       path,
		Make:       mk,
		Model:      firstString(fi, "Model"),
		LensID:     firstInt(fi, 0, "LensID", "LensType"),
		LensSerial: firstString(fi, "LensSerialNumber"),
		BodySerial: firstString(fi, "SerialNumber", "InternalSerialNumber"),
		Software:   firstString(fi, "Software"),
		Width:      firstInt(fi, 0, "ImageWidth", "ExifImageWidth"),
		Height:     firstInt(fi, 0, "ImageHeight", "ExifImageHeight"),
	}
	ph.RawWidth = firstInt(fi, ph.Width, "SensorWidth", "RawImageFullWidth")
	ph.RawHeight = firstInt(fi, ph.Height, "SensorHeight", "RawImageFullHeight")

	ph.ISO = firstFloat(fi, "ISO")
	ph.Shutter = firstFloat(fi, "ExposureTime", "ShutterSpeed")
	ph.FocalLength = firstFloat(fi, "FocalLength")
	ph.Aperture = firstFloat(fi, "FNumber", "ApertureValue")
	ph.Resolution = uint64(ph.Width * ph.Height)
	ph.Lens = FormatLens(firstString(fi, "LensMake"), firstString(fi, "LensModel", "Lens"))
	ph.Camera = FormatCamera(ph.Make, ph.Model)
	ph.Vendor = VendorFor(ph.Make, ph.Model, firstInt(fi, -1, "Quality"))

	ds := firstString(fi, "DateTimeOriginal", "CreateDate")
	if ds == "" {
		klog.Warningf("no capture date for %s", path)
		ph.Taken = undated
		return ph, nil
	}

	taken, err := parseExifDate(ds)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", ds, err)
	}
	ph.Taken = taken

	return ph, nil
}
