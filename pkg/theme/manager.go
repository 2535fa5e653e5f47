package theme

import (
	"context"
	"log/slog"

	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/pref"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"github.com/hoi-launcher/shell/pkg/toast"
)

const (
	// AttrName is the document root attribute carrying the theme.
	AttrName = "data-theme"

	// PreferenceKey is the preference store key for an explicit choice.
	PreferenceKey = "theme"

	// HostCommand tells the host which theme to use for window chrome.
	HostCommand = "set_theme"
)

// Root is the document root the theme is written to.
type Root interface {
	SetRootAttr(key, value string)
	RootAttr(key string) string
}

// Notifier delivers single-shot commands to the host.
type Notifier interface {
	Notify(ctx context.Context, cmd string, args map[string]any) error
}

// Manager applies and persists the theme.
type Manager struct {
	state   *State
	root    Root
	store   pref.Store
	host    Notifier
	system  System
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the preference store.
func WithStore(s pref.Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithHost sets the host notifier.
func WithHost(n Notifier) Option {
	return func(m *Manager) { m.host = n }
}

// WithSystem sets the OS preference probe.
func WithSystem(s System) Option {
	return func(m *Manager) { m.system = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics counts applied themes.
func WithMetrics(t *telemetry.Metrics) Option {
	return func(m *Manager) { m.metrics = t }
}

// NewManager creates a Manager writing to root. A nil state allocates a
// fresh one.
func NewManager(state *State, root Root, opts ...Option) *Manager {
	if state == nil {
		state = &State{}
	}
	m := &Manager{
		state:  state,
		root:   root,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the state the manager updates.
func (m *Manager) State() *State { return m.state }

// Apply sets the theme. With persist the choice is stored and becomes
// explicit, which stops OS changes from overriding it. Without persist the
// current source is kept.
func (m *Manager) Apply(ctx context.Context, dark, persist bool) {
	source := m.state.Source()
	if persist {
		source = SourceExplicit
	} else if source == "" {
		source = SourceSystem
	}
	m.apply(ctx, dark, persist, source)
}

func (m *Manager) apply(ctx context.Context, dark, persist bool, source Source) {
	t := FromDark(dark)
	m.root.SetRootAttr(AttrName, string(t))
	m.state.set(t, source)
	m.metrics.RecordThemeChange(string(t), string(source))

	if persist && m.store != nil {
		if err := m.store.Set(ctx, PreferenceKey, string(t)); err != nil {
			m.logger.Debug("theme not persisted", "error", err)
		}
	}

	if m.host != nil {
		if err := m.host.Notify(ctx, HostCommand, map[string]any{"dark": dark}); err != nil {
			m.logger.Debug("host theme notification failed", "error", err)
		}
	}
}

// Init applies the persisted theme, or the OS theme when nothing valid is
// persisted. In the OS case it also starts following OS changes for as
// long as ctx lives.
func (m *Manager) Init(ctx context.Context) {
	if t, ok := m.persisted(ctx); ok {
		m.apply(ctx, t.IsDark(), false, SourcePersisted)
		return
	}

	dark := false
	if m.system != nil {
		d, err := m.system.Dark(ctx)
		if err != nil {
			m.logger.Debug("system theme unavailable, using light", "error", err)
		} else {
			dark = d
		}
	}
	m.apply(ctx, dark, false, SourceSystem)

	if m.system == nil {
		return
	}
	err := m.system.Watch(ctx, func(dark bool) {
		m.onSystemChange(ctx, dark)
	})
	if err != nil {
		m.logger.Debug("system theme watch not registered", "error", err)
	}
}

// onSystemChange follows the OS unless the user has chosen a theme since
// startup. Any stored value, even one Init rejected, counts as a choice.
func (m *Manager) onSystemChange(ctx context.Context, dark bool) {
	if m.state.Source() == SourceExplicit {
		return
	}
	if m.hasStored(ctx) {
		return
	}
	m.apply(ctx, dark, false, SourceSystem)
}

func (m *Manager) hasStored(ctx context.Context) bool {
	_, ok, err := pref.Lookup(ctx, m.store, PreferenceKey)
	if err != nil {
		m.logger.Debug("theme preference unreadable", "error", err)
		return false
	}
	return ok
}

func (m *Manager) persisted(ctx context.Context) (Theme, bool) {
	v, ok, err := pref.Lookup(ctx, m.store, PreferenceKey)
	if err != nil {
		m.logger.Debug("theme preference unreadable", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return Parse(v)
}

// Toggle flips the theme shown on the root and persists the result. Any
// value other than "light", including none, toggles to light.
func (m *Manager) Toggle(ctx context.Context) {
	dark := m.root.RootAttr(AttrName) == string(Light)
	m.apply(ctx, dark, true, SourceExplicit)
}

// Bind wires the settings page controls present on page.
func (m *Manager) Bind(ctx context.Context, page dom.Page) error {
	if page.HasElement("theme-toggle") {
		err := page.Bind("theme-toggle", func(ctx context.Context, _ string) error {
			m.Toggle(ctx)
			return nil
		})
		if err != nil {
			return err
		}
	}
	if page.HasElement("check-update") {
		doc := page.Doc()
		return page.Bind("check-update", func(ctx context.Context, _ string) error {
			toast.Info(doc, "Update checks are handled by the native host")
			return nil
		})
	}
	return nil
}
