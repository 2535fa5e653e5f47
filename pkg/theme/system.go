package theme

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

// System reports the OS color scheme preference.
type System interface {
	// Dark reports whether the OS prefers a dark scheme.
	Dark(ctx context.Context) (bool, error)

	// Watch calls fn whenever the preference changes, until ctx is done.
	// It returns once the watch is registered.
	Watch(ctx context.Context, fn func(dark bool)) error
}

// ErrUnsupported is returned when the platform preference cannot be read.
var ErrUnsupported = errors.New("theme: system preference unavailable")

// EnvOverride forces the detected scheme when set to "dark" or "light".
const EnvOverride = "LAUNCHER_COLOR_SCHEME"

// DefaultPollInterval is how often DetectSystem re-reads the preference.
const DefaultPollInterval = 5 * time.Second

// Probe reads the current preference once.
type Probe func(ctx context.Context) (bool, error)

// Poller implements System by calling a Probe on an interval.
type Poller struct {
	Probe    Probe
	Interval time.Duration
}

// Dark runs the probe.
func (p *Poller) Dark(ctx context.Context) (bool, error) {
	return p.Probe(ctx)
}

// Watch reads the current value, then polls in a goroutine and reports
// changes only. An error from the first read is returned and nothing is
// started.
func (p *Poller) Watch(ctx context.Context, fn func(dark bool)) error {
	last, err := p.Probe(ctx)
	if err != nil {
		return err
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dark, err := p.Probe(ctx)
				if err != nil || dark == last {
					continue
				}
				last = dark
				fn(dark)
			}
		}
	}()
	return nil
}

// Static is a System with a fixed, settable preference. Set notifies
// watchers synchronously.
type Static struct {
	mu       sync.Mutex
	dark     bool
	err      error
	watchers []func(bool)
}

// NewStatic creates a Static reporting dark.
func NewStatic(dark bool) *Static {
	return &Static{dark: dark}
}

// Dark returns the current value.
func (s *Static) Dark(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, s.err
}

// Watch registers fn.
func (s *Static) Watch(ctx context.Context, fn func(dark bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.watchers = append(s.watchers, fn)
	return nil
}

// Set changes the value and notifies watchers if it differs.
func (s *Static) Set(dark bool) {
	s.mu.Lock()
	changed := s.dark != dark
	s.dark = dark
	watchers := slices.Clone(s.watchers)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range watchers {
		fn(dark)
	}
}

// Fail makes Dark and Watch return err.
func (s *Static) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// runner executes a command and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DetectSystem returns a polling System for the current platform. The
// LAUNCHER_COLOR_SCHEME environment variable takes precedence over any
// platform probe.
func DetectSystem(interval time.Duration) *Poller {
	return &Poller{
		Probe:    detector{goos: runtime.GOOS, run: execRunner}.probe,
		Interval: interval,
	}
}

type detector struct {
	goos string
	run  runner
}

func (d detector) probe(ctx context.Context) (bool, error) {
	if t, ok := Parse(strings.ToLower(strings.TrimSpace(os.Getenv(EnvOverride)))); ok {
		return t.IsDark(), nil
	}

	switch d.goos {
	case "darwin":
		return d.darwin(ctx)
	case "windows":
		return d.windows(ctx)
	case "linux", "freebsd", "openbsd", "netbsd":
		return d.gnome(ctx)
	}
	return false, ErrUnsupported
}

// darwin reads AppleInterfaceStyle, which only exists in dark mode.
func (d detector) darwin(ctx context.Context) (bool, error) {
	out, err := d.run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, errors.Join(ErrUnsupported, err)
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), nil
}

// windows reads AppsUseLightTheme; 0 means dark.
func (d detector) windows(ctx context.Context) (bool, error) {
	out, err := d.run(ctx, "reg", "query",
		`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
		"/v", "AppsUseLightTheme")
	if err != nil {
		return false, errors.Join(ErrUnsupported, err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "AppsUseLightTheme" {
			return fields[2] == "0x0", nil
		}
	}
	return false, ErrUnsupported
}

// gnome prefers the color-scheme key and falls back to the GTK theme name.
func (d detector) gnome(ctx context.Context) (bool, error) {
	out, err := d.run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err == nil {
		v := strings.Trim(strings.TrimSpace(string(out)), "'")
		switch v {
		case "prefer-dark":
			return true, nil
		case "prefer-light":
			return false, nil
		}
	}

	out, err = d.run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if err != nil {
		return false, errors.Join(ErrUnsupported, err)
	}
	return strings.Contains(strings.ToLower(string(out)), "dark"), nil
}
