package dump

import "fmt"

// DataAccessError is returned, if records of an entity type could not be
// fetched.
type DataAccessError struct {
	Entity string
	Err    error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Entity, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// FilesystemError is returned, if a dump could not be written or read back.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// DatasetError marks the failure of a whole dataset, naming the entity type
// that failed, if any.
type DatasetError struct {
	DatasetID int64
	Entity    string
	Err       error
}

func (e *DatasetError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("dataset %d: %v", e.DatasetID, e.Err)
	}
	return fmt.Sprintf("dataset %d: %s: %v", e.DatasetID, e.Entity, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }
