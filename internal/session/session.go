// Package session owns the per-page install and connectivity state that the
// dashboard chrome shows: the install banner and the online indicator.
package session

import (
	"context"
	"sync"
)

// Messages shown by the install chrome.
const (
	MsgInstalled = "App installed successfully! 🎉"
)

// BannerStore persists the dismissed-banner flag per device.
type BannerStore interface {
	BannerDismissed(ctx context.Context, deviceKey string) (bool, error)
	DismissBanner(ctx context.Context, deviceKey string) error
}

// Pinger reports whether the shop origin can be reached.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// ConnStatus is the text and CSS class of the connection indicator.
type ConnStatus struct {
	Online bool   `json:"online"`
	Text   string `json:"text"`
	Class  string `json:"class"`
}

// Session is created once per page load (or CLI run) and passed to whatever
// renders the chrome.
type Session struct {
	mu          sync.Mutex
	deviceKey   string
	store       BannerStore
	online      bool
	installable bool
	installed   bool
	bannerShown bool
	dismissed   bool
}

// New loads the dismissed flag for deviceKey. A session starts online.
func New(ctx context.Context, deviceKey string, store BannerStore) (*Session, error) {
	s := &Session{deviceKey: deviceKey, store: store, online: true}
	if store == nil {
		return s, nil
	}
	dismissed, err := store.BannerDismissed(ctx, deviceKey)
	if err != nil {
		return s, err
	}
	s.dismissed = dismissed
	return s, nil
}

func (s *Session) DeviceKey() string {
	return s.deviceKey
}

func (s *Session) SetOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
}

func (s *Session) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Probe pings the shop and updates the indicator. It has no other effect.
func (s *Session) Probe(ctx context.Context, p Pinger) ConnStatus {
	s.SetOnline(p.Ping(ctx))
	return s.Status()
}

func (s *Session) Status() ConnStatus {
	if s.Online() {
		return ConnStatus{Online: true, Text: "Online", Class: "online"}
	}
	return ConnStatus{Online: false, Text: "Offline", Class: "offline"}
}

// SetInstallable records that the browser offered an install prompt.
func (s *Session) SetInstallable(v bool) {
	s.mu.Lock()
	s.installable = v
	s.mu.Unlock()
}

func (s *Session) Installable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installable && !s.installed
}

// MarkInstalled hides every install element for the rest of the session.
func (s *Session) MarkInstalled() {
	s.mu.Lock()
	s.installed = true
	s.bannerShown = false
	s.mu.Unlock()
}

func (s *Session) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installed
}

// BannerAllowed is false once installed or dismissed on this device.
func (s *Session) BannerAllowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.installed && !s.dismissed
}

// ShouldShowBanner is true when an install prompt is available and the banner
// is allowed and not already showing.
func (s *Session) ShouldShowBanner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installable && !s.installed && !s.dismissed && !s.bannerShown
}

// ShowBanner marks the banner visible if it should be shown.
func (s *Session) ShowBanner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.installable || s.installed || s.dismissed || s.bannerShown {
		return false
	}
	s.bannerShown = true
	return true
}

func (s *Session) BannerShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bannerShown
}

// DismissBanner hides the banner and persists the choice for the device.
func (s *Session) DismissBanner(ctx context.Context) error {
	s.mu.Lock()
	s.dismissed = true
	s.bannerShown = false
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	return s.store.DismissBanner(ctx, s.deviceKey)
}
