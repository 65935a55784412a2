package clipboard

import (
	"errors"
	"strings"
	"testing"
)

func TestServiceCopy(t *testing.T) {
	writeFailure := errors.New("no display")
	testCases := []struct {
		name          string
		unsupported   bool
		writeError    error
		expectWritten string
		expectError   string
	}{
		{name: "writes_text", expectWritten: "- [a](a.md)"},
		{name: "wraps_write_error", writeError: writeFailure, expectError: "copy to clipboard: no display"},
		{name: "unsupported_platform", unsupported: true, expectError: "clipboard is not available"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var written string
			service := &Service{
				writeAll: func(text string) error {
					written = text
					return testCase.writeError
				},
				unsupported: func() bool { return testCase.unsupported },
			}
			copyError := service.Copy("- [a](a.md)")
			if testCase.expectError != "" {
				if copyError == nil || !strings.Contains(copyError.Error(), testCase.expectError) {
					t.Fatalf("expected error containing %q, got %v", testCase.expectError, copyError)
				}
				if testCase.writeError != nil && !errors.Is(copyError, testCase.writeError) {
					t.Fatalf("expected wrapped write error, got %v", copyError)
				}
				return
			}
			if copyError != nil {
				t.Fatalf("unexpected error: %v", copyError)
			}
			if written != testCase.expectWritten {
				t.Fatalf("expected %q to be written, got %q", testCase.expectWritten, written)
			}
		})
	}
}

func TestCopierFunc(t *testing.T) {
	var captured string
	copier := CopierFunc(func(text string) error {
		captured = text
		return nil
	})
	if err := copier.Copy("toc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "toc" {
		t.Fatalf("expected captured text, got %q", captured)
	}
}
