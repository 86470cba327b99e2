package report

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"go-pos-dashboard/internal/notify"
)

const MsgCopied = "Summary copied to clipboard!"

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// SystemClipboard uses xclip/xsel/wl-copy, pbcopy or the Windows API.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// Copier copies the summary, falling back to printing it for manual
// select-and-copy when the clipboard cannot be used.
type Copier struct {
	Clipboard Clipboard
	Fallback  io.Writer
	Logger    *zap.Logger
}

// CopySummary confirms with the same toast whichever path was taken.
func (c Copier) CopySummary(text string, n *notify.Notifier) error {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var err error
	if c.Clipboard != nil {
		err = c.Clipboard.WriteAll(text)
		if err == nil {
			n.Success(MsgCopied)
			return nil
		}
		logger.Debug("clipboard unavailable, using fallback", zap.Error(err))
	}
	if c.Fallback == nil {
		if err == nil {
			err = fmt.Errorf("no clipboard configured")
		}
		n.Error("Failed to copy summary", err)
		return err
	}
	if _, werr := io.WriteString(c.Fallback, text); werr != nil {
		n.Error("Failed to copy summary", werr)
		return werr
	}
	n.Success(MsgCopied)
	return nil
}
