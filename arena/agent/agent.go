package agent

import (
	"fmt"

	"holdem-arena/arena/engine"
)

// Agent is a betting strategy seated at the table. Decide must be safe to
// call from any goroutine; the runtime gives it no way to see anything
// beyond its view.
type Agent interface {
	Name() string
	Decide(view engine.PlayerView) engine.Action
}

// Constructor builds a named agent instance. Each simulation gets fresh
// instances so strategies cannot leak state between runs.
type Constructor func(name string) Agent

// Registry maps strategy keys to constructors. Registration is explicit;
// there is no scanning or dynamic loading of outside code.
type Registry struct {
	order []string
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

func (r *Registry) Register(key string, ctor Constructor) {
	if _, dup := r.ctors[key]; dup {
		panic(fmt.Sprintf("agent: duplicate registration %q", key))
	}
	r.order = append(r.order, key)
	r.ctors[key] = ctor
}

// Names lists registered keys in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Build instantiates one agent per key, named after its key.
func (r *Registry) Build(keys []string) ([]Agent, error) {
	out := make([]Agent, 0, len(keys))
	for _, k := range keys {
		ctor, ok := r.ctors[k]
		if !ok {
			return nil, fmt.Errorf("agent: unknown strategy %q", k)
		}
		out = append(out, ctor(k))
	}
	return out, nil
}
