// Package cryokit turns CryoET Data Portal datasets into Croissant metadata.
package cryokit

const (
	// AppName is used for cache and data directories.
	AppName = "cryokit"
	// Version of the tools.
	Version = "0.1.0"
)
