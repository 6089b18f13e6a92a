package rawinfo

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes the human-readable report. Colors are dropped when w is not a terminal.
type Printer struct {
	w        io.Writer
	clock    Clock
	sections Sections

	label  lipgloss.Style
	muted  lipgloss.Style
	banner lipgloss.Style
	file   lipgloss.Style
}

// NewPrinter returns a Printer for w.
func NewPrinter(w io.Writer, s Sections, c Clock) *Printer {
	r := lipgloss.NewRenderer(w)
	bg := lipgloss.Color("#2F4F4F") // dark slate gray

	return &Printer{
		w:        w,
		clock:    c,
		sections: s,
		label:    r.NewStyle().Foreground(lipgloss.Color("6")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		banner:   r.NewStyle().Background(bg).Foreground(lipgloss.Color("15")),
		file:     r.NewStyle().Background(bg).Foreground(lipgloss.Color("#90EE90")),
	}
}

func (p *Printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// field starts an indented line with a colored label.
func (p *Printer) field(indent string, name string) {
	p.printf("%s%s ", indent, p.label.Render(name+":"))
}

// Photo prints the per-file block.
func (p *Printer) Photo(ph *Photo) {
	s := p.sections

	p.printf("%s%s%s\n", p.banner.Render("Metadata for image "), p.file.Render(filepath.Base(ph.Path)), p.banner.Render(":"))

	if s.Camera {
		p.field("\t", "Camera")
		p.printf("%s %s %s %s\n", FormatCamera(ph.Make, ph.Model), p.muted.Render("@"), FormatISO(ph.ISO), FormatShutter(ph.Shutter))

		if ph.BodySerial != "" {
			p.field("\t\t", "Body serial")
			p.printf("%s\n", ph.BodySerial)
		}
	}

	if s.Lens {
		p.field("\t", "Lens")
		p.printf("%s (id=%d) %s %smm %s\n", ph.Lens, ph.LensID, p.muted.Render("@"),
			strconv.FormatFloat(ph.FocalLength, 'f', -1, 32), FormatAperture(ph.Aperture))

		if ph.LensSerial != "" {
			p.field("\t\t", "Lens serial")
			p.printf("%s\n", ph.LensSerial)
		}
	}

	if s.Size {
		p.field("\t", "Size")
		p.printf("%s %dx%d %s\n", FormatResolution(ph.Resolution), ph.Width, ph.Height,
			p.muted.Render(fmt.Sprintf("(raw: %dx%d)", ph.RawWidth, ph.RawHeight)))
	}

	if s.Timestamp {
		p.field("\t", "Timestamp")
		p.printf("%s %s\n", FormatTimestamp(ph.Taken), p.muted.Render("("+FormatTimeSince(ph.Taken, p.clock)+")"))
	}

	if s.Software && ph.Software != "" {
		p.field("\t", "Software")
		p.printf("%s\n", ph.Software)
	}

	switch v := ph.Vendor.(type) {
	case Sony:
		if s.CameraType {
			p.field("\t", "Camera type")
			p.printf("%s\n", v.CameraTypeName())
		}
		if s.Quality {
			p.field("\t", "Quality")
			p.printf("%s\n", v.QualityName())
		}
	case Canon:
		if s.Quality {
			p.field("\t", "Quality")
			p.printf("%s\n", v.QualityName())
		}
	}
}

// Summary prints the batch summary. elapsed is the time spent analyzing.
func (p *Printer) Summary(s *Summary, elapsed time.Duration) {
	ms := elapsed.Milliseconds()
	p.printf("Analyzed %d photos in %dms (%.02fms/photo)\n", s.Count, ms, float64(ms)/float64(s.Count))

	p.field("", "Time frame")
	p.printf("%s %s %s %s\n", FormatTimestamp(s.First), p.muted.Render("-"), FormatTimestamp(s.Last),
		p.muted.Render("("+FormatTimeSpan(s.First, s.Last)+")"))

	for _, se := range s.Series {
		p.field("", se.Name)
		p.printf("%s %s %s %s %s %s %s %s\n",
			p.muted.Render("min:"), se.Format(se.Min),
			p.muted.Render("max:"), se.Format(se.Max),
			p.muted.Render("avg:"), se.Format(se.Avg),
			p.muted.Render("median:"), se.Format(se.Median))
	}

	for _, t := range s.Lenses {
		p.field("", fmt.Sprintf("Lens '%s'", t.Name))
		p.printf("%s\n", photos(t.Count))
	}

	for _, t := range s.Cameras {
		p.field("", fmt.Sprintf("Camera '%s'", t.Name))
		p.printf("%s\n", photos(t.Count))
	}
}

func photos(n int) string {
	if n == 1 {
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", n)
}
