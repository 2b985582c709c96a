// Package generate turns portal datasets into Croissant datasets, one
// directory per dataset, optionally in parallel.
package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/miku/cryokit/convert"
	"github.com/miku/cryokit/dump"
	"github.com/miku/cryokit/publish"
	"github.com/miku/cryokit/registry"
	"github.com/miku/cryokit/schema/cdp"
	"github.com/miku/cryokit/schema/croissant"
	"github.com/miku/cryokit/verify"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Source of portal data. Implemented by portal.Client.
type Source interface {
	dump.Finder
	Dataset(ctx context.Context, id int64) (*cdp.Dataset, error)
}

// Options for generating a dataset.
type Options struct {
	// OutDir gets one subdirectory per dataset.
	OutDir string
	// DataURL is where OutDir is served from.
	DataURL string
	// Binaries adds file objects and file sets for binary data.
	Binaries bool
	// Publisher is optional.
	Publisher publish.Publisher
}

// Result of generating a single dataset.
type Result struct {
	DatasetID int64
	JobID     string
	Dir       string
	Metadata  *croissant.Metadata
	Elapsed   time.Duration
}

// Manifest returns the path to the written manifest.
func (r *Result) Manifest() string {
	return filepath.Join(r.Dir, croissant.Filename)
}

// Dataset dumps a dataset into {OutDir}/{id}, writes the manifest and checks
// it against the written files. Errors are *dump.DatasetError values.
func Dataset(ctx context.Context, src Source, id int64, opts Options) (*Result, error) {
	var (
		started = time.Now()
		jobID   = uuid.New().String()
		dir     = filepath.Join(opts.OutDir, strconv.FormatInt(id, 10))
		dataURL = dump.ContentURL(opts.DataURL, strconv.FormatInt(id, 10))
		logger  = log.WithFields(log.Fields{"dataset": id, "job": jobID})
		fail    = func(entity string, err error) error {
			var derr *dump.DatasetError
			if errors.As(err, &derr) {
				return err
			}
			return &dump.DatasetError{DatasetID: id, Entity: entity, Err: err}
		}
	)
	logger.WithField("dir", dir).Info("generate: started")
	ds, err := src.Dataset(ctx, id)
	if err != nil {
		return nil, fail(registry.Dataset.Name, &dump.DataAccessError{Entity: registry.Dataset.Name, Err: err})
	}
	res, err := dump.Portal(ctx, src, id, dir, dataURL)
	if err != nil {
		return nil, fail("", err)
	}
	distribution := res.Distribution()
	if opts.Binaries {
		distribution = append(distribution, convert.BinaryResources(ds,
			res.Records[registry.Tomogram.Name],
			res.Records[registry.TiltSeries.Name],
			res.Records[registry.Alignment.Name])...)
	}
	m, err := convert.DatasetMetadata(ds, distribution, res.RecordSets)
	if err != nil {
		return nil, fail("", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fail("", err)
	}
	manifest := filepath.Join(dir, croissant.Filename)
	if _, err := dump.WriteJSON(manifest, m); err != nil {
		return nil, fail("", err)
	}
	problems, err := verify.Dir(dir)
	if err != nil {
		return nil, fail("", err)
	}
	if err := verify.AsError(problems); err != nil {
		return nil, fail("", err)
	}
	if opts.Publisher != nil {
		names := make([]string, 0, len(res.Files)+1)
		for _, f := range res.Files {
			names = append(names, f.ID)
		}
		names = append(names, croissant.Filename)
		if err := opts.Publisher.Publish(ctx, id, dir, names); err != nil {
			return nil, fail("", err)
		}
	}
	result := &Result{
		DatasetID: id,
		JobID:     jobID,
		Dir:       dir,
		Metadata:  m,
		Elapsed:   time.Since(started),
	}
	logger.WithFields(log.Fields{
		"files":      len(m.Distribution),
		"recordsets": len(m.RecordSets),
		"elapsed":    result.Elapsed.Round(time.Millisecond),
	}).Info("generate: done")
	return result, nil
}

// Run generates datasets with a fixed number of workers. Datasets are
// independent: a failure does not stop the others. Results of successful
// datasets are returned in input order, together with an error joining all
// dataset failures.
func Run(ctx context.Context, src Source, ids []int64, workers int, opts Options) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var (
		g       errgroup.Group
		results = make([]*Result, len(ids))
		errs    = make([]error, len(ids))
	)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = &dump.DatasetError{DatasetID: id, Err: err}
				return nil
			}
			results[i], errs[i] = Dataset(ctx, src, id, opts)
			if errs[i] != nil {
				log.WithField("dataset", id).Error(errs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	var ok []*Result
	for _, r := range results {
		if r != nil {
			ok = append(ok, r)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return ok, fmt.Errorf("%d of %d dataset(s) failed: %w", len(ids)-len(ok), len(ids), err)
	}
	return ok, nil
}
