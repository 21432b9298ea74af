// Package errors provides error annotation with slog attributes and source
// locations. It re-exports the standard library helpers so callers only need
// one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// annotatedError carries a message, an optional wrapped error, slog
// attributes, and the source location where it was created.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the caller skipping the given number
// of frames above this function.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// New creates a new error with the given message and source annotation.
func New(msg string) error {
	return &annotatedError{msg: msg, err: nil, attrs: nil, source: callerSource(1)}
}

// NewSentinel creates an error meant to be used as a sentinel value with
// [Is] checks.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, err: nil, attrs: nil, source: callerSource(1)}
}

// Wrap annotates err with a message and optional slog attributes.
//
// The resulting error message is "msg: err". A nil err yields an error with
// just the message so that careless call sites stay loggable.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, source: callerSource(1)}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		err:    nil,
		attrs:  nil,
		source: callerSource(3), //nolint:mnd // skips DecoratePanic, the deferred func, and gopanic.
	}
}

// SlogError converts an error into a grouped [slog.Attr] containing the
// message, the annotations collected from the whole error chain, and the
// source location of the outermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("msg", "<nil>"))
	}

	var (
		annotations []any
		source      string
	)
	for e := err; e != nil; e = errors.Unwrap(e) {
		var annotated *annotatedError
		if errors.As(e, &annotated) {
			for _, attr := range annotated.attrs {
				annotations = append(annotations, attr)
			}
			if source == "" {
				source = annotated.source
			}
			e = annotated
		} else {
			break
		}
	}

	args := []any{slog.String("msg", err.Error())}
	if len(annotations) > 0 {
		args = append(args, slog.Group("annotations", annotations...))
	}
	if source != "" {
		args = append(args, slog.String("source", source))
	}
	return slog.Group("error", args...)
}

// Is reports whether any error in err's chain matches target. See [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target. See [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err. See [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the errors into a single error. See [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}
