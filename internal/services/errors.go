package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthentication marks failures to establish identity with the server.
	// The only error class that aborts a whole sync run.
	ErrAuthentication = errors.New("authentication error")
	// ErrTransport marks a failed remote call. The calling feature degrades to
	// an empty result instead of aborting the run.
	ErrTransport = errors.New("transport error")
	// ErrTemplate marks template resolution failures. Rendering falls back to
	// the built-in note layout.
	ErrTemplate = errors.New("template error")
	// ErrTransient marks per-item failures that are counted and skipped.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error must abort the whole sync run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
