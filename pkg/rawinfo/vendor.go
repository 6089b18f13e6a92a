package rawinfo

import (
	"fmt"
	"strings"
)

// VendorInfo carries vendor-specific details. It is one of Sony, Canon or Unsupported.
type VendorInfo interface {
	// Name is the vendor name as printed.
	Name() string
}

// SonyCameraType is a Sony body family.
type SonyCameraType int

// Sony body families, numbered as LibRaw numbers them.
const (
	SonyUnknown SonyCameraType = iota
	SonyDSC
	SonyDSLR
	SonyNEX
	SonySLT
	SonyILCE
	SonyILCA
)

var sonyModelPrefixes = []struct {
	prefix string
	kind   SonyCameraType
}{
	{"DSC-", SonyDSC},
	{"DSLR-", SonyDSLR},
	{"NEX-", SonyNEX},
	{"SLT-", SonySLT},
	{"ILCE-", SonyILCE},
	{"ILCA-", SonyILCA},
}

// Sony holds Sony makernote details.
type Sony struct {
	CameraType SonyCameraType
	Quality    int64
}

// Name implements VendorInfo.
func (Sony) Name() string { return "Sony" }

// CameraTypeName describes the body family.
func (s Sony) CameraTypeName() string {
	switch s.CameraType {
	case SonyDSC:
		return "Sony DSC point-and-shoot"
	case SonyDSLR:
		return "Sony DSLR"
	case SonyNEX:
		return "Sony NEX mirrorless"
	case SonySLT:
		return "Sony SLT DSLT"
	case SonyILCE:
		return "Sony ILCE E-mount mirrorless"
	case SonyILCA:
		return "Sony ILCA A-mount DSLT"
	default:
		return fmt.Sprintf("Unknown type (%d)", s.CameraType)
	}
}

// QualityName describes the raw compression setting.
func (s Sony) QualityName() string {
	switch s.Quality {
	case 0, 6:
		return "(Uncompressed) RAW"
	case 7, 8:
		return "Compressed RAW"
	default:
		return fmt.Sprintf("Unknown quality (%d)", s.Quality)
	}
}

// Canon holds Canon makernote details.
type Canon struct {
	Quality int64
}

// Name implements VendorInfo.
func (Canon) Name() string { return "Canon" }

// QualityName describes the image quality setting.
func (c Canon) QualityName() string {
	switch c.Quality {
	case 1:
		return "Economy"
	case 2:
		return "Normal"
	case 3:
		return "Fine"
	case 4:
		return "RAW"
	case 5:
		return "Superfine"
	case 7:
		return "CRAW"
	case 130:
		return "Normal Movie"
	case 131:
		return "CRM StandardRaw"
	default:
		return fmt.Sprintf("Unknown quality (%d)", c.Quality)
	}
}

// Unsupported is any vendor without specific display lines.
type Unsupported struct {
	Make string
}

// Name implements VendorInfo.
func (u Unsupported) Name() string { return u.Make }

// sonyCameraType derives the body family from the model name, e.g. "ILCE-7M3".
func sonyCameraType(model string) SonyCameraType {
	m := strings.ToUpper(strings.TrimSpace(model))
	for _, p := range sonyModelPrefixes {
		if strings.HasPrefix(m, p.prefix) {
			return p.kind
		}
	}
	return SonyUnknown
}

// VendorFor picks the vendor variant for a camera make.
func VendorFor(make string, model string, quality int64) VendorInfo {
	mk := strings.ToLower(strings.TrimSpace(make))
	switch {
	case strings.HasPrefix(mk, "sony"):
		return Sony{CameraType: sonyCameraType(model), Quality: quality}
	case strings.HasPrefix(mk, "canon"):
		return Canon{Quality: quality}
	default:
		return Unsupported{Make: strings.TrimSpace(make)}
	}
}
