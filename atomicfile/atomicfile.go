// Package atomicfile writes files through a temporary file in the same
// directory, which is renamed on Close. Readers never observe partial
// content; an interrupted write leaves at most a stray temporary file.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is an *os.File, which will be renamed to its final name on Close.
type File struct {
	*os.File
	name   string
	perm   os.FileMode
	closed bool
}

// New creates a new temporary file in the directory of name.
func New(name string) (*File, error) {
	return NewPerm(name, 0644)
}

// NewPerm is like New, but sets the permissions of the final file.
func NewPerm(name string, perm os.FileMode) (*File, error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: name, perm: perm}, nil
}

// Name returns the final name of the file.
func (f *File) Name() string {
	return f.name
}

// Close syncs and closes the temporary file and moves it into place.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	tmp := f.File.Name()
	err := f.File.Sync()
	if closeErr := f.File.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp, f.perm)
	}
	if err == nil {
		err = os.Rename(tmp, f.name)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}

// Abort removes the temporary file, the destination is left untouched.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	tmp := f.File.Name()
	f.File.Close()
	return os.Remove(tmp)
}

// WriteFile writes data to a file atomically.
func WriteFile(name string, data []byte, perm os.FileMode) error {
	f, err := NewPerm(name, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
