package rawinfo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rounding is math.Round throughout: half away from zero.

// FormatShutter renders an exposure time, e.g. 0.004 as "1/250s" and 2 as "2s".
func FormatShutter(f float64) string {
	// a missing exposure field reads as 0
	if f <= 0 {
		return "0s"
	}
	if f < 1.0 {
		return fmt.Sprintf("1/%ss", strconv.FormatFloat(math.Round(1/f), 'f', -1, 64))
	}
	// exposure times come from float32 sources, so print at that precision
	return strconv.FormatFloat(f, 'f', -1, 32) + "s"
}

// FormatAperture renders an f-number to one decimal place, e.g. "f/2.8".
func FormatAperture(f float64) string {
	return "f/" + strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}

// FormatISO renders an ISO speed, e.g. "ISO 400".
func FormatISO(f float64) string {
	return "ISO " + strconv.FormatFloat(math.Round(f), 'f', -1, 64)
}

// FormatFocalLength renders a focal length, e.g. "50mm".
func FormatFocalLength(f float64) string {
	return strconv.FormatFloat(math.Round(f), 'f', -1, 64) + "mm"
}

// FormatResolution renders a pixel count in megapixels, e.g. "24MP".
func FormatResolution(pixels uint64) string {
	return strconv.FormatFloat(math.Round(float64(pixels)/1_000_000), 'f', -1, 64) + "MP"
}

// FormatLens renders a lens name from its maker and model.
func FormatLens(maker string, model string) string {
	maker = strings.TrimSpace(maker)
	model = strings.TrimSpace(model)
	if maker == "" && model == "" {
		return "Unknown lens"
	}
	if maker == "" {
		return model
	}
	return maker + " " + model
}

// FormatCamera renders a camera name from its make and model.
func FormatCamera(make string, model string) string {
	return strings.TrimSpace(strings.TrimSpace(make) + " " + strings.TrimSpace(model))
}
