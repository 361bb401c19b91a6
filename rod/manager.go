// Package rod provides the rendered fetcher: a headless Chrome drive for
// pages that only carry their content after JavaScript runs.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// Manager owns the process-wide browser instance. The browser is expensive,
// so it is launched lazily on the first page request, shared by every
// concurrent export afterwards, and recycled after maxPages pages because
// Chrome's memory baseline only grows under load and never recovers from
// page cleanup alone.
//
// Manager is safe for concurrent use. Individual pages are per-request:
// callers must Close every page they acquire, on every exit path.
type Manager struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	closed    atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxPages sets the number of pages before the browser is recycled.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(m *Manager) {
		m.maxPages = n
	}
}

// NewManager creates a Manager. No browser is launched until the first
// Page call. Close must be called when the Manager is no longer needed.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Page opens a fresh page, launching or recycling the browser as needed.
// The caller owns the returned page and must Close it.
func (m *Manager) Page() (*rod.Page, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("browser manager is closed")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		if err := m.launchBrowser(); err != nil {
			return nil, err
		}
	} else if m.pageCount >= m.maxPages {
		m.recycleBrowser()
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	m.pageCount++
	return page, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
// Must be called with mu held.
func (m *Manager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (m *Manager) closeBrowser() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If the new
// launch fails the old browser is kept so in-flight exports keep working.
// Must be called with mu held.
func (m *Manager) recycleBrowser() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launchBrowser(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	m.pageCount = 0
}

// LauncherPID returns the process ID of the browser launcher, or 0 when no
// browser is running. Exists for tests to verify cleanup.
func (m *Manager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}
