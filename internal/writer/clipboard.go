package writer

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard receives rendered text.
type Clipboard interface {
	WriteAll(text string) error
}

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard is not supported on this system (install xclip, xsel or wl-clipboard)")

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the last copied text; used in tests and dry runs.
type MemoryClipboard struct {
	Text string
}

// WriteAll stores text.
func (m *MemoryClipboard) WriteAll(text string) error {
	m.Text = text
	return nil
}
