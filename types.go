package main

import (
	"errors"
	"fmt"
)

// CommentRecord is one reader comment extracted from a page archive
type CommentRecord struct {
	Author             string
	ReferenceTimestamp float64 // seconds since 2001-01-01 00:00 UTC
	Body               string  // markup, taken verbatim
}

// PageDocument is the parsed form of a page archive
type PageDocument struct {
	PageName string
	Comments []CommentRecord
}

// ProcessingStatus represents the outcome status of rendering a page archive
type ProcessingStatus string

const (
	StatusSuccess ProcessingStatus = "success"
	StatusError   ProcessingStatus = "error"
)

// PageResult tracks the outcome of rendering each archive
type PageResult struct {
	Archive  string
	PageName string
	Filename string
	Comments int
	Status   ProcessingStatus
	Error    error
}

// ErrUnsafePageName is returned when a page name cannot be used as a file name
var ErrUnsafePageName = errors.New("unsafe page name")

// ErrStopWalk stops WalkArchives early without reporting an error
var ErrStopWalk = errors.New("stop walk")

// ArchiveNotFoundError reports a page directory without its expected archive file
type ArchiveNotFoundError struct {
	Path string
	Err  error
}

func (e *ArchiveNotFoundError) Error() string {
	return fmt.Sprintf("archive not found: %s", e.Path)
}

func (e *ArchiveNotFoundError) Unwrap() error {
	return e.Err
}

// ArchiveError wraps any failure while reading or rendering one archive
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}
