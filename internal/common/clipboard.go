package common

import (
	"github.com/atotto/clipboard"
)

// SetClipboardValue puts the given text on the system clipboard.
func SetClipboardValue(value string) error {
	return clipboard.WriteAll(value)
}
