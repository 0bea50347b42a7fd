package ingest

import "errors"

var (
	// ErrUnsupportedFormat means the declared content kind is not one of the
	// supported tabular encodings.
	ErrUnsupportedFormat = errors.New("unsupported upload format")
	// ErrParseFailure means the byte stream could not be decoded as the
	// declared encoding at all. Fatal for the whole upload, unlike per-row
	// rejection which is silent.
	ErrParseFailure = errors.New("failed to parse upload")
	// ErrEmptyUpload means the file decoded fine but no row survived
	// validation.
	ErrEmptyUpload = errors.New("upload contains no valid rows")
	// ErrNoWorkersAvailable means the active worker set is empty.
	ErrNoWorkersAvailable = errors.New("no active workers available")
)
