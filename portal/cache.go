package portal

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/zstd"
	"github.com/miku/cryokit"
	"github.com/miku/cryokit/atomicfile"
)

// ErrCacheMiss is returned by a cache, if there is no fresh entry for a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw API responses.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileCache keeps zstd compressed responses in a directory, one file per
// key. Entries older than TTL are ignored; a zero TTL never expires.
type FileCache struct {
	Dir string
	TTL time.Duration
}

// NewFileCache returns a cache under the user cache directory.
func NewFileCache(ttl time.Duration) (*FileCache, error) {
	dir, err := xdg.CacheFile(filepath.Join(cryokit.AppName, "graphql"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{Dir: dir, TTL: ttl}, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%x.json.zst", sha1.Sum([]byte(key))))
}

// Get returns the cached value, or ErrCacheMiss.
func (c *FileCache) Get(key string) ([]byte, error) {
	p := c.path(key)
	fi, err := os.Stat(p)
	if os.IsNotExist(err) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	if c.TTL > 0 && time.Since(fi.ModTime()) > c.TTL {
		return nil, ErrCacheMiss
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// Set stores a value.
func (c *FileCache) Set(key string, value []byte) error {
	f, err := atomicfile.New(c.path(key))
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Abort()
		return err
	}
	if _, err := enc.Write(value); err != nil {
		enc.Close()
		f.Abort()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
