// Package clipboard copies rendered tables of contents to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const (
	errorClipboardUnavailable = "clipboard is not available on this system"
	errorClipboardWriteFormat = "copy to clipboard: %w"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll    func(string) error
	unsupported func() bool
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{
		writeAll:    clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if service.unsupported != nil && service.unsupported() {
		return fmt.Errorf(errorClipboardWriteFormat, errors.New(errorClipboardUnavailable))
	}
	writeAll := service.writeAll
	if writeAll == nil {
		writeAll = clipboard.WriteAll
	}
	if writeError := writeAll(text); writeError != nil {
		return fmt.Errorf(errorClipboardWriteFormat, writeError)
	}
	return nil
}

// CopierFunc adapts a function into a Copier.
type CopierFunc func(text string) error

// Copy invokes the underlying function.
func (copierFunc CopierFunc) Copy(text string) error {
	return copierFunc(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopierFunc(nil)
)
