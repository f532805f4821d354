package pairjob

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pair failures for reporting and history.
type ErrorKind string

const (
	KindNotFound ErrorKind = "not_found"
	KindParse    ErrorKind = "parse"
	KindNoPairs  ErrorKind = "no_pairs"
	KindWrite    ErrorKind = "write"
	KindCanceled ErrorKind = "canceled"
)

var (
	// ErrNoPairs reports that synchronization produced nothing to write.
	ErrNoPairs = errors.New("no synchronized pairs")
	// ErrLocked reports that another batch holds the output directory.
	ErrLocked = errors.New("output directory is locked by another run")
)

// ErrorClassifier allows errors to declare their classification.
type ErrorClassifier interface {
	ErrorKind() string
}

// Error is a classified pair failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind implements ErrorClassifier.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// KindOf returns the classification of err, or "" when err is nil or
// unclassified.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}
