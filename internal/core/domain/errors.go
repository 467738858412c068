package domain

import "go.trai.ch/zerr"

var (
	// ErrBlobNotFound is returned when a blob cache lookup finds no entry for
	// the requested key.
	ErrBlobNotFound = zerr.New("blob not found")

	// ErrKeyNotDefined is returned when a snapshot key no longer resolves in
	// the current definition tree.
	ErrKeyNotDefined = zerr.New("key not defined")

	// ErrUnsupportedValue is returned when the serializer encounters a value
	// kind it cannot turn into source text.
	ErrUnsupportedValue = zerr.New("unsupported code value")

	// ErrNoDefinitions is returned when a config file contains no define
	// mapping.
	ErrNoDefinitions = zerr.New("no definitions found in config")

	// ErrSnapshotNotFound is returned by inspection commands when no snapshot
	// has been persisted for the current definitions.
	ErrSnapshotNotFound = zerr.New("no snapshot persisted for these definitions")
)
