package notify

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// BrowserOpener opens URLs with the OS handler.
type BrowserOpener struct {
	open func(url string) error
}

func NewBrowserOpener() *BrowserOpener {
	// The terminal view owns stdout.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &BrowserOpener{open: browser.OpenURL}
}

func (o *BrowserOpener) OpenURL(url string) error {
	if err := o.open(url); err != nil {
		return fmt.Errorf("browser: open %s: %w", url, err)
	}
	return nil
}
