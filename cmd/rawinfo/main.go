// rawinfo prints shooting metadata for raw photo files and summarizes a batch of them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/tstromberg/rawinfo/pkg/rawinfo"
)

// listFlag is a repeatable, comma-separated list of strings.
type listFlag struct {
	values []string
	set    bool
}

func (l *listFlag) String() string {
	return strings.Join(l.values, ",")
}

func (l *listFlag) Set(s string) error {
	// the first explicit value replaces the default
	if !l.set {
		l.values = nil
		l.set = true
	}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			l.values = append(l.values, v)
		}
	}
	return nil
}

var (
	dirs  = &listFlag{values: []string{"."}}
	files = &listFlag{}

	silent = flag.Bool("silent", false, "Don't show per-file info")

	showCamera     = flag.Bool("showCamera", true, "Show camera name, image ISO and shutter speed")
	showLens       = flag.Bool("showLens", true, "Show lens name, image focal length and aperture")
	showSize       = flag.Bool("showSize", true, "Show image size (dimensions) and resolution")
	showTimestamp  = flag.Bool("showTimestamp", true, "Show image timestamp")
	showSoftware   = flag.Bool("showSoftware", true, "Show camera software version")
	showCameraType = flag.Bool("showCameraType", true, "Show camera type")
	showQuality    = flag.Bool("showQuality", true, "Show image quality setting")

	extractor    = flag.String("extractor", "exiftool", "Metadata extractor: exiftool or native")
	exiftoolPath = flag.String("exiftool", "", "Path to the exiftool binary (default: from $PATH)")
	jobs         = flag.Int("jobs", 1, "Number of files to extract in parallel")
	keepGoing    = flag.Bool("keep-going", false, "Skip files that fail to extract instead of aborting")
	watchFlag    = flag.Bool("watch", false, "Keep watching the directories and add new raw files as they appear")
	settle       = flag.Duration("settle", rawinfo.DefaultSettle, "How long a new file must be unchanged before it is read in watch mode")
)

func init() {
	flag.Var(dirs, "d", "Directories to search for raw files (repeatable, comma-separated)")
	flag.Var(dirs, "directories", "Alias for -d")
	flag.Var(files, "f", "Raw files to process (repeatable, comma-separated)")
	flag.Var(files, "files", "Alias for -f")
	flag.BoolVar(silent, "s", false, "Alias for -silent")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-s] [-f <files>] [-d <directories>] [OPTION...] [FILE...]\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "NOTE: Use -show(...)=false to disable boolean options with a default value of true.\n\n")
		flag.PrintDefaults()
	}
}

func newExtractor(name string, binary string) (rawinfo.Extractor, error) {
	switch name {
	case "native":
		return rawinfo.NewNative(), nil
	case "exiftool":
		if binary == "" {
			if _, err := exec.LookPath("exiftool"); err != nil {
				klog.Warningf("exiftool not found in $PATH, using the native extractor")
				return rawinfo.NewNative(), nil
			}
		}
		return rawinfo.NewExifTool(binary)
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

func main() {
	klog.InitFlags(nil)

	if len(os.Args) == 1 {
		fmt.Fprintln(os.Stderr, "No arguments provided")
		flag.Usage()
		os.Exit(1)
	}

	flag.Parse()

	// only scan the working directory when nothing else was asked for
	if !dirs.set && (files.set || flag.NArg() > 0) {
		dirs.values = nil
	}

	c := &rawinfo.Config{
		Dirs:   dirs.values,
		Files:  append(files.values, flag.Args()...),
		Silent: *silent,
		Sections: rawinfo.Sections{
			Camera:     *showCamera,
			Lens:       *showLens,
			Size:       *showSize,
			Timestamp:  *showTimestamp,
			Software:   *showSoftware,
			CameraType: *showCameraType,
			Quality:    *showQuality,
		},
		Jobs:      *jobs,
		KeepGoing: *keepGoing || *watchFlag,
		Watch:     *watchFlag,
		Settle:    *settle,
	}

	if c.Watch && len(c.Dirs) == 0 {
		klog.Exitf("-watch needs at least one directory")
	}

	paths, err := rawinfo.Inputs(c)
	if err != nil && !(c.Watch && errors.Is(err, rawinfo.ErrNoFiles)) {
		klog.Exitf("inputs: %v", err)
	}

	ex, err := newExtractor(*extractor, *exiftoolPath)
	if err != nil {
		klog.Exitf("extractor: %v", err)
	}
	defer func() {
		if err := ex.Close(); err != nil {
			klog.Errorf("close extractor: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := rawinfo.SystemClock{}
	p := rawinfo.NewPrinter(os.Stdout, c.Sections, clock)

	b := rawinfo.NewBatch(0)
	if len(paths) > 0 {
		b, err = rawinfo.Run(ctx, c, ex, p, clock, paths)
		if err != nil {
			klog.Exitf("%v", err)
		}
	}

	if !c.Watch {
		return
	}

	w := rawinfo.NewWatcher(c, ex, p, clock, b, paths)
	if err := w.Run(ctx, c.Dirs); err != nil {
		klog.Exitf("watch failed: %v", err)
	}
}
