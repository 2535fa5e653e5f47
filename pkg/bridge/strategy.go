package bridge

import (
	"context"
	"errors"
)

// Invoker calls a host command with positional arguments.
type Invoker interface {
	Invoke(ctx context.Context, cmd string, args map[string]any) (any, error)
}

// Request is the object-wrapped form of a command.
type Request struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args,omitempty"`
}

// ObjectInvoker accepts the object-wrapped calling convention.
type ObjectInvoker interface {
	InvokeRequest(ctx context.Context, req Request) (any, error)
}

// InvokeFunc adapts a function to Invoker.
type InvokeFunc func(ctx context.Context, cmd string, args map[string]any) (any, error)

// Invoke calls f.
func (f InvokeFunc) Invoke(ctx context.Context, cmd string, args map[string]any) (any, error) {
	return f(ctx, cmd, args)
}

// Env describes the host capabilities present in this process. Any field
// may be nil.
type Env struct {
	// Import loads the module form of the host API. It is called on every
	// attempt; an error means the module is not available right now.
	Import func(ctx context.Context) (Invoker, error)

	// Global is the always-loaded host API. If it also implements
	// ObjectInvoker the object-wrapped form is tried after the positional
	// one.
	Global Invoker

	// Fallback is a last-resort invoke function.
	Fallback InvokeFunc
}

// Strategy is one calling convention.
type Strategy interface {
	Name() string
	TryInvoke(ctx context.Context, cmd string) (any, error)
}

// Strategy names, also used as metric labels.
const (
	StrategyModule       = "module"
	StrategyGlobal       = "global"
	StrategyGlobalObject = "global-object"
	StrategyFallback     = "fallback"
)

// errNoModule is returned when Import yields neither an invoker nor an error.
var errNoModule = errors.New("bridge: module form returned no invoker")

// Strategies returns the conventions present in env, in the order they
// must be tried.
func (e Env) Strategies() []Strategy {
	var out []Strategy
	if e.Import != nil {
		out = append(out, moduleStrategy{load: e.Import})
	}
	if e.Global != nil {
		out = append(out, globalStrategy{inv: e.Global})
		if obj, ok := e.Global.(ObjectInvoker); ok {
			out = append(out, objectStrategy{inv: obj})
		}
	}
	if e.Fallback != nil {
		out = append(out, fallbackStrategy{fn: e.Fallback})
	}
	return out
}

type moduleStrategy struct {
	load func(ctx context.Context) (Invoker, error)
}

func (s moduleStrategy) Name() string { return StrategyModule }

func (s moduleStrategy) TryInvoke(ctx context.Context, cmd string) (any, error) {
	inv, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errNoModule
	}
	return inv.Invoke(ctx, cmd, nil)
}

type globalStrategy struct {
	inv Invoker
}

func (s globalStrategy) Name() string { return StrategyGlobal }

func (s globalStrategy) TryInvoke(ctx context.Context, cmd string) (any, error) {
	return s.inv.Invoke(ctx, cmd, nil)
}

type objectStrategy struct {
	inv ObjectInvoker
}

func (s objectStrategy) Name() string { return StrategyGlobalObject }

func (s objectStrategy) TryInvoke(ctx context.Context, cmd string) (any, error) {
	return s.inv.InvokeRequest(ctx, Request{Cmd: cmd})
}

type fallbackStrategy struct {
	fn InvokeFunc
}

func (s fallbackStrategy) Name() string { return StrategyFallback }

func (s fallbackStrategy) TryInvoke(ctx context.Context, cmd string) (any, error) {
	return s.fn(ctx, cmd, nil)
}
