package rawinfo

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ErrNoFiles means no raw files were found or given.
var ErrNoFiles = errors.New("no raw files found")

// Inputs returns the raw files found in c.Dirs followed by c.Files.
func Inputs(c *Config) ([]string, error) {
	found, err := Find(c.Dirs)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	paths := []string{}
	for _, p := range append(found, c.Files...) {
		if p != "" {
			paths = append(paths, p)
		}
	}

	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	klog.Infof("found %d raw files", len(paths))
	return paths, nil
}

// Analyze extracts each path and ingests it into b. onPhoto, if set, is
// called for each photo in input order just before it is ingested.
//
// With c.Jobs > 1, extraction runs in parallel while ingestion stays on the
// calling goroutine. Unless c.KeepGoing is set, the first failure aborts.
func Analyze(ctx context.Context, c *Config, ex Extractor, paths []string, b *Batch, onPhoto func(*Photo)) error {
	b.Reserve(b.Len() + len(paths))

	ingest := func(ph *Photo) {
		if onPhoto != nil {
			onPhoto(ph)
		}
		b.Ingest(ph.Record)
	}

	if c.Jobs <= 1 {
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}

			klog.V(1).Infof("extracting %s", p)
			ph, err := ex.Extract(p)
			if err != nil {
				if !c.KeepGoing {
					return err
				}
				klog.Errorf("skipping: %v", err)
				continue
			}
			ingest(ph)
		}
		return nil
	}

	photos := make([]*Photo, len(paths))
	failures := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			klog.V(1).Infof("extracting %s", p)
			ph, err := ex.Extract(p)
			if err != nil {
				if !c.KeepGoing {
					return err
				}
				failures[i] = err
				return nil
			}
			photos[i] = ph
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, ph := range photos {
		if failures[i] != nil {
			klog.Errorf("skipping: %v", failures[i])
			continue
		}
		ingest(ph)
	}
	return nil
}

// Run analyzes paths, printing each photo unless c.Silent, and prints the
// batch summary when more than one file was given.
func Run(ctx context.Context, c *Config, ex Extractor, p *Printer, clock Clock, paths []string) (*Batch, error) {
	b := NewBatch(len(paths))
	start := clock.Now()

	var onPhoto func(*Photo)
	if !c.Silent {
		onPhoto = p.Photo
	}

	if err := Analyze(ctx, c, ex, paths, b, onPhoto); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if len(paths) == 1 {
		return b, nil
	}

	s, err := Summarize(b)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if !c.Silent {
		p.printf("\n")
	}
	p.Summary(s, clock.Now().Sub(start))

	return b, nil
}
