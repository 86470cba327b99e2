// Package notify collects the short-lived toast messages shown to staff.
// Every failure path ends in exactly one toast plus a log line.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Lifetime is how long a toast stays on screen.
const Lifetime = 3 * time.Second

type Toast struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Icon mirrors the toast icon of the dashboard.
func (t Toast) Icon() string {
	switch t.Kind {
	case Error:
		return "❌"
	case Warning:
		return "⚠️"
	default:
		return "✅"
	}
}

// LifetimeMillis is used by the page script to auto-dismiss the toast.
func (t Toast) LifetimeMillis() int64 {
	return Lifetime.Milliseconds()
}

// Notifier is safe for concurrent use; page loads push from several goroutines.
type Notifier struct {
	mu     sync.Mutex
	toasts []Toast
	logger *zap.Logger
	now    func() time.Time
}

func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger, now: time.Now}
}

func (n *Notifier) push(kind Kind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, Toast{Kind: kind, Message: msg, ExpiresAt: n.now().Add(Lifetime)})
}

func (n *Notifier) Success(msg string) {
	n.push(Success, msg)
}

func (n *Notifier) Info(msg string) {
	n.push(Info, msg)
}

// Warn shows a warning toast. err, when non-nil, is logged but never shown.
func (n *Notifier) Warn(msg string, err error) {
	if err != nil {
		n.logger.Warn(msg, zap.Error(err))
	}
	n.push(Warning, msg)
}

// Error shows an error toast and logs the underlying cause.
func (n *Notifier) Error(msg string, err error) {
	if err != nil {
		n.logger.Error(msg, zap.Error(err))
	} else {
		n.logger.Info("user error", zap.String("message", msg))
	}
	n.push(Error, msg)
}

// Active returns the toasts that have not yet expired and drops the rest.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Last returns the most recent toast, if any.
func (n *Notifier) Last() (Toast, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return Toast{}, false
	}
	return n.toasts[len(n.toasts)-1], true
}
