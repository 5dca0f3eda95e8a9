// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"
	"sync"

	"github.com/1broseidon/wininfo/internal/platform"
)

// Window is the scripted state of one fake window. A non-nil error field
// makes the matching query fail with it.
type Window struct {
	Process    platform.ProcessIdentity
	ProcessErr error

	Title    string
	TitleErr error
	Class    string
	ClassErr error

	Monitor    string
	MonitorErr error
	Spans      bool
	SpansErr   error

	CommandLine    string
	CommandLineErr error

	Minimized bool
}

// Backend is a fake desktop. Windows are listed in the order they were
// added; closed windows answer every query with platform.ErrInvalidHandle.
type Backend struct {
	mu       sync.Mutex
	order    []platform.WindowHandle
	windows  map[platform.WindowHandle]*Window
	products map[string]string
	enumErr  error
}

var _ platform.Backend = (*Backend)(nil)

// New returns an empty fake desktop.
func New() *Backend {
	return &Backend{
		windows:  make(map[platform.WindowHandle]*Window),
		products: make(map[string]string),
	}
}

// Add places a window on the desktop.
func (b *Backend) Add(h platform.WindowHandle, w Window) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.windows[h]; !ok {
		b.order = append(b.order, h)
	}
	cp := w
	b.windows[h] = &cp
}

// Close removes a window while leaving it in the enumeration order, as if
// it closed between listing and querying.
func (b *Backend) Close(h platform.WindowHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.windows, h)
}

// SetTitle renames a window.
func (b *Backend) SetTitle(h platform.WindowHandle, title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if w, ok := b.windows[h]; ok {
		w.Title = title
	}
}

// SetProduct registers a version-resource product name for exePath.
func (b *Backend) SetProduct(exePath, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[exePath] = name
}

// FailEnumeration makes Windows return err.
func (b *Backend) FailEnumeration(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enumErr = err
}

func (b *Backend) lookup(h platform.WindowHandle) (*Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[h]
	if !ok {
		return nil, fmt.Errorf("window %s: %w", h, platform.ErrInvalidHandle)
	}
	cp := *w
	return &cp, nil
}

func (b *Backend) Windows(opts platform.EnumOptions) ([]platform.WindowHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enumErr != nil {
		return nil, b.enumErr
	}
	var out []platform.WindowHandle
	for _, h := range b.order {
		if w, ok := b.windows[h]; ok && w.Minimized && !opts.IncludeMinimized {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (b *Backend) ResolveProcess(h platform.WindowHandle) (platform.ProcessIdentity, error) {
	w, err := b.lookup(h)
	if err != nil {
		return platform.ProcessIdentity{}, err
	}
	if w.ProcessErr != nil {
		return platform.ProcessIdentity{}, w.ProcessErr
	}
	return w.Process, nil
}

func (b *Backend) WindowTitle(h platform.WindowHandle) (string, error) {
	w, err := b.lookup(h)
	if err != nil {
		return "", err
	}
	if w.TitleErr != nil {
		return "", w.TitleErr
	}
	return w.Title, nil
}

func (b *Backend) WindowClass(h platform.WindowHandle) (string, error) {
	w, err := b.lookup(h)
	if err != nil {
		return "", err
	}
	if w.ClassErr != nil {
		return "", w.ClassErr
	}
	return w.Class, nil
}

func (b *Backend) ProductName(exePath string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name, ok := b.products[exePath]
	if !ok {
		return "", fmt.Errorf("version info of %s: %w", exePath, platform.ErrResourceUnavailable)
	}
	return name, nil
}

func (b *Backend) NearestMonitor(h platform.WindowHandle) (string, error) {
	w, err := b.lookup(h)
	if err != nil {
		return "", err
	}
	if w.MonitorErr != nil {
		return "", w.MonitorErr
	}
	return w.Monitor, nil
}

func (b *Backend) SpansMultipleMonitors(h platform.WindowHandle) (bool, error) {
	w, err := b.lookup(h)
	if err != nil {
		return false, err
	}
	if w.SpansErr != nil {
		return false, w.SpansErr
	}
	return w.Spans, nil
}

func (b *Backend) CommandLine(h platform.WindowHandle) (string, error) {
	w, err := b.lookup(h)
	if err != nil {
		return "", err
	}
	if w.CommandLineErr != nil {
		return "", w.CommandLineErr
	}
	return w.CommandLine, nil
}
