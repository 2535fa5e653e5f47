package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnavailable is returned when no calling convention produced a usable
// result.
var ErrUnavailable = errors.New("bridge: native host unavailable")

// Bridge invokes host commands through whichever conventions Env offers.
type Bridge struct {
	env     Env
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for skipped strategies.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics records every attempt.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

// New creates a Bridge over env.
func New(env Env, opts ...Option) *Bridge {
	b := &Bridge{
		env:    env,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Invoke runs cmd through each strategy in turn and returns the first
// result that normalizes to a mod list. Strategies that fail or return an
// unusable shape are logged and skipped. When all are exhausted the error
// wraps ErrUnavailable.
func (b *Bridge) Invoke(ctx context.Context, cmd string) (entries []ModEntry, err error) {
	ctx, span := telemetry.StartSpan(ctx, "bridge.Invoke", attribute.String("launcher.command", cmd))
	defer func() { telemetry.EndSpan(span, err) }()

	for _, s := range b.env.Strategies() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := b.try(ctx, s, cmd)
		if err != nil {
			b.metrics.RecordBridgeAttempt(cmd, s.Name(), telemetry.OutcomeError)
			b.logger.Warn("invoke candidate failed",
				"command", cmd,
				"strategy", s.Name(),
				"error", err,
			)
			continue
		}

		list, ok := Normalize(raw)
		if !ok {
			b.metrics.RecordBridgeAttempt(cmd, s.Name(), telemetry.OutcomeUnusable)
			b.logger.Warn("invoke candidate returned unusable result",
				"command", cmd,
				"strategy", s.Name(),
				"type", fmt.Sprintf("%T", raw),
			)
			continue
		}

		b.metrics.RecordBridgeAttempt(cmd, s.Name(), telemetry.OutcomeOK)
		span.SetAttributes(attribute.String("launcher.strategy", s.Name()))
		return list, nil
	}

	b.metrics.RecordBridgeUnavailable(cmd)
	return nil, lerrors.New(lerrors.CodeBridgeUnavailable).
		WithDetailf("no invocation strategy produced a result for %q", cmd).
		Wrap(ErrUnavailable)
}

// try runs one strategy, turning a panic in host code into an error.
func (b *Bridge) try(ctx context.Context, s Strategy, cmd string) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %s panicked: %v", s.Name(), r)
		}
	}()
	return s.TryInvoke(ctx, cmd)
}

// Notify sends a single-shot command whose result is ignored. The module
// form is tried first and the global form second. The returned error wraps
// ErrUnavailable and every failure seen.
func (b *Bridge) Notify(ctx context.Context, cmd string, args map[string]any) error {
	var errs []error

	if b.env.Import != nil {
		inv, err := b.env.Import(ctx)
		if err == nil && inv == nil {
			err = errNoModule
		}
		if err == nil {
			if _, err = inv.Invoke(ctx, cmd, args); err == nil {
				return nil
			}
		}
		errs = append(errs, fmt.Errorf("%s: %w", StrategyModule, err))
	}

	if b.env.Global != nil {
		_, err := b.env.Global.Invoke(ctx, cmd, args)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", StrategyGlobal, err))
	}

	return lerrors.New(lerrors.CodeBridgeUnavailable).
		WithDetailf("could not deliver %q", cmd).
		Wrap(errors.Join(append([]error{ErrUnavailable}, errs...)...))
}
