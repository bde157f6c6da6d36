// Package gderrors defines the typed infrastructure-error stratum: failures
// that originate outside the analysis itself (missing files, denied access,
// corrupt caches, canceled operations) as opposed to diagnostics, which
// describe problems found inside analyzed source.
package gderrors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/pkg/errors"
)

// FileNotFound reports that a script or project file referenced by path
// does not exist on the configured file system.
type FileNotFound struct {
	Path  string
	cause error
}

func NewFileNotFound(path string, cause error) *FileNotFound {
	return &FileNotFound{Path: path, cause: errors.WithStack(cause)}
}

func (e *FileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *FileNotFound) Unwrap() error { return e.cause }

// AccessDenied reports that the file system refused a read or write.
type AccessDenied struct {
	Path  string
	cause error
}

func NewAccessDenied(path string, cause error) *AccessDenied {
	return &AccessDenied{Path: path, cause: errors.WithStack(cause)}
}

func (e *AccessDenied) Error() string {
	return fmt.Sprintf("access denied: %s", e.Path)
}

func (e *AccessDenied) Unwrap() error { return e.cause }

// CorruptCache reports that a persisted incremental-analysis cache entry
// failed to decode, so the caller must fall back to
// a full re-analysis of the affected file.
type CorruptCache struct {
	Path  string
	cause error
}

func NewCorruptCache(path string, cause error) *CorruptCache {
	return &CorruptCache{Path: path, cause: errors.WithStack(cause)}
}

func (e *CorruptCache) Error() string {
	return fmt.Sprintf("corrupt cache entry: %s", e.Path)
}

func (e *CorruptCache) Unwrap() error { return e.cause }

// Canceled reports that the caller's context was canceled or timed out
// mid-analysis.
type Canceled struct {
	cause error
}

func NewCanceled(cause error) *Canceled {
	return &Canceled{cause: errors.WithStack(cause)}
}

func (e *Canceled) Error() string { return "analysis canceled" }

func (e *Canceled) Unwrap() error { return e.cause }

// InternalInconsistency marks a resolver or validator state the
// implementation believes is unreachable. Unlike the errors above, it is
// never expected in normal operation; it carries a captured stack trace to
// make the impossible state debuggable instead of panicking blindly.
type InternalInconsistency struct {
	*goerrors.Error
	Component string
}

// NewInternalInconsistency wraps a description of an impossible resolver
// state with a captured stack trace.
func NewInternalInconsistency(component, message string) *InternalInconsistency {
	return &InternalInconsistency{
		Error:     goerrors.New(message),
		Component: component,
	}
}

func (e *InternalInconsistency) Error() string {
	return fmt.Sprintf("internal inconsistency in %s: %s", e.Component, e.Error.Error())
}

// As helpers let callers branch on error category with errors.As from the
// standard library, matching the teacher's wrap-with-%w convention at call
// sites while still identifying these infrastructure categories precisely.
func IsFileNotFound(err error) bool {
	var target *FileNotFound
	return stderrors.As(err, &target)
}

func IsAccessDenied(err error) bool {
	var target *AccessDenied
	return stderrors.As(err, &target)
}

func IsCorruptCache(err error) bool {
	var target *CorruptCache
	return stderrors.As(err, &target)
}

func IsCanceled(err error) bool {
	var target *Canceled
	return stderrors.As(err, &target)
}

func IsInternalInconsistency(err error) bool {
	var target *InternalInconsistency
	return stderrors.As(err, &target)
}
