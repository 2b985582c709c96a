// cryokit generates Croissant metadata for CryoET Data Portal datasets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/miku/cryokit"
	"github.com/miku/cryokit/config"
	"github.com/miku/cryokit/generate"
	"github.com/miku/cryokit/portal"
	"github.com/miku/cryokit/publish"
	"github.com/miku/cryokit/verify"
	"github.com/miku/cryokit/xflag"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# cryokit - croissant metadata for the cryoet data portal

Dumps all portal tables of a dataset to JSON files and writes a croissant.json
manifest describing them, one directory per dataset.

## generate a single dataset

	$ cryokit -i 10440 -d out

## generate multiple datasets

	$ cryokit -i 10440 -i 10441,10442 -w 8

## generate all datasets

	$ cryokit -d out

## serve the output directory

Content URLs are built from -u, the default works with:

	$ cd out && python -m http.server

## publish to S3

	$ cryokit -i 10440 -s3-bucket my-bucket -s3-prefix croissant

## verify a generated directory

	$ cryokit -verify out/10440

## configuration file

Flags take precedence over values from the configuration file (JSON).

	{
	  "out_dir": "/data/croissant",
	  "data_url": "https://example.com/croissant",
	  "workers": 8,
	  "cache_ttl": "12h",
	  "s3": {"bucket": "my-bucket"}
	}

## flags

`, "\n")

var (
	configFile  = flag.String("c", "", "path to JSON configuration file")
	outDir      = flag.String("d", "", "output directory, one subdirectory per dataset")
	dataURL     = flag.String("u", "", "base URL the output directory is served from")
	endpoint    = flag.String("e", "", "portal GraphQL endpoint")
	numWorkers  = flag.Int("w", 0, "number of datasets to generate in parallel, 0 means one per CPU")
	maxRetries  = flag.Int("r", 0, "max retries")
	timeout     = flag.Duration("T", 0, "connection timeout")
	pageSize    = flag.Int("page-size", 0, "records per portal request, 0 means all")
	noCache     = flag.Bool("no-cache", false, "do not cache portal responses")
	cacheTTL    = flag.Duration("cache-ttl", 0, "max age of cached portal responses")
	binaries    = flag.Bool("binaries", true, "describe tomograms, tilt series and alignment files")
	logLevel    = flag.String("log-level", "", "log level")
	verifyDir   = flag.String("verify", "", "verify a generated dataset directory and exit")
	showVersion = flag.Bool("version", false, "show version")
	s3Bucket    = flag.String("s3-bucket", "", "publish generated files to this bucket")
	s3Prefix    = flag.String("s3-prefix", "", "key prefix for published files")
	s3Region    = flag.String("s3-region", "", "S3 region")
	s3Endpoint  = flag.String("s3-endpoint", "", "S3 compatible endpoint")
	s3PathStyle = flag.Bool("s3-path-style", false, "use path style S3 addressing")
	datasetIDs  xflag.IntList
)

// loadConfig reads the configuration file, if any, and applies all flags set
// on the command line.
func loadConfig() (*config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	if *configFile != "" {
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.OutDir = *outDir
		case "u":
			cfg.DataURL = *dataURL
		case "e":
			cfg.Endpoint = *endpoint
		case "w":
			cfg.Workers = *numWorkers
		case "r":
			cfg.MaxRetries = *maxRetries
		case "T":
			cfg.Timeout = config.Duration{Duration: *timeout}
		case "page-size":
			cfg.PageSize = *pageSize
		case "no-cache":
			cfg.NoCache = *noCache
		case "cache-ttl":
			cfg.CacheTTL = config.Duration{Duration: *cacheTTL}
		case "binaries":
			cfg.Binaries = *binaries
		case "log-level":
			cfg.LogLevel = *logLevel
		case "s3-bucket":
			cfg.S3.Bucket = *s3Bucket
		case "s3-prefix":
			cfg.S3.Prefix = *s3Prefix
		case "s3-region":
			cfg.S3.Region = *s3Region
		case "s3-endpoint":
			cfg.S3.Endpoint = *s3Endpoint
		case "s3-path-style":
			cfg.S3.UsePathStyle = *s3PathStyle
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	flag.Var(&datasetIDs, "i", "dataset id, repeatable or comma separated; all datasets if empty")
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(cryokit.Version)
		os.Exit(0)
	}
	if *verifyDir != "" {
		problems, err := verify.Dir(*verifyDir)
		if err != nil {
			log.Fatal(err)
		}
		for _, p := range problems {
			fmt.Println(p)
		}
		if len(problems) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	client := portal.NewClient(cfg.Endpoint, cfg.Timeout.Duration, cfg.MaxRetries)
	client.PageSize = cfg.PageSize
	if !cfg.NoCache {
		cache, err := portal.NewFileCache(cfg.CacheTTL.Duration)
		if err != nil {
			log.Fatal(err)
		}
		client.Cache = cache
	}
	opts := generate.Options{
		OutDir:   cfg.OutDir,
		DataURL:  cfg.DataURL,
		Binaries: cfg.Binaries,
	}
	if cfg.S3.Bucket != "" {
		p, err := publish.New(ctx, cfg.S3)
		if err != nil {
			log.Fatal(err)
		}
		opts.Publisher = p
	}
	ids := []int64(datasetIDs)
	if len(ids) == 0 {
		if ids, err = client.DatasetIDs(ctx); err != nil {
			log.Fatal(err)
		}
		log.WithField("count", len(ids)).Info("generating all datasets")
	}
	started := time.Now()
	results, err := generate.Run(ctx, client, ids, cfg.Workers, opts)
	for _, r := range results {
		fmt.Println(r.Manifest())
	}
	log.WithFields(log.Fields{
		"ok":      len(results),
		"total":   len(ids),
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Info("finished")
	if err != nil {
		log.Fatal(err)
	}
}
