package engine

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tiny-systems/errorpanic"

	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/pkg/status"
)

// Event is one delivered lifecycle trigger together with the full set of
// inputs the components derive desired state from. Events carry no ordering
// guarantee and may be re-delivered; every run re-derives everything.
type Event struct {
	// Kind names the trigger, used for logging only: config-changed,
	// relation-joined, relation-changed, upgrade, leadership-changed.
	Kind string

	// App is the managed application name; Namespace is where its
	// resources live.
	App       string
	Namespace string

	Config    config.Config
	Relations []Relation
}

// Relation identifies one related consumer and what it advertised.
type Relation struct {
	// Name is the host platform's identifier for the channel object.
	Name string
	// Namespace is where the channel object lives.
	Namespace string
	// App is the remote application name.
	App string
	// Channel is the data-exchange channel name, e.g. object-storage.
	Channel string
	// SupportedVersions is the ordered list of protocol versions the
	// consumer advertised. Nil means the consumer listed nothing yet.
	SupportedVersions []string
}

// Component computes one piece of desired state or external side effect and
// reports how it went. Implementations must be synchronous and idempotent.
type Component interface {
	Name() string
	Evaluate(ctx context.Context, ev Event) status.Status
}

// Node binds a component to the names of components that must evaluate and
// reach Active before it runs.
type Node struct {
	Component Component
	DependsOn []string
}

// Result is the outcome of a single run.
type Result struct {
	Aggregate status.Status
	// Statuses holds the status of every evaluated component. Skipped
	// components are absent.
	Statuses map[string]status.Status
}

// Engine owns the dependency graph and drives each component exactly once
// per event in topological order. The graph is built once at startup and
// never mutated afterwards.
type Engine struct {
	log   logr.Logger
	order []Node
}

// New validates the graph and fixes the execution order. Declaration order
// is preserved among independent components so runs stay deterministic.
func New(log logr.Logger, nodes []Node) (*Engine, error) {
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		name := n.Component.Name()
		if name == "" {
			return nil, errors.New("component name is empty")
		}
		if _, ok := byName[name]; ok {
			return nil, errors.Errorf("duplicate component %s", name)
		}
		byName[name] = n
	}
	for _, n := range nodes {
		for _, dep := range n.DependsOn {
			if _, ok := byName[dep]; !ok {
				return nil, errors.Errorf("component %s depends on unknown component %s", n.Component.Name(), dep)
			}
		}
	}

	// Kahn's algorithm over declaration order.
	placed := make(map[string]bool, len(nodes))
	order := make([]Node, 0, len(nodes))
	for len(order) < len(nodes) {
		progress := false
		for _, n := range nodes {
			name := n.Component.Name()
			if placed[name] {
				continue
			}
			ready := true
			for _, dep := range n.DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[name] = true
				order = append(order, n)
				progress = true
			}
		}
		if !progress {
			return nil, errors.New("dependency graph has a cycle")
		}
	}

	return &Engine{log: log, order: order}, nil
}

// Run evaluates the graph against one event. A component is skipped when any
// of its dependencies was skipped or did not reach Active; skipped components
// contribute no status. Component panics never escape: they surface as a
// Blocked status carrying the panic message.
func (e *Engine) Run(ctx context.Context, ev Event) Result {
	runID := uuid.NewString()
	l := e.log.WithValues("run", runID, "event", ev.Kind, "app", ev.App)

	statuses := make(map[string]status.Status, len(e.order))
	evaluated := make([]status.Status, 0, len(e.order))

	for _, n := range e.order {
		name := n.Component.Name()

		skip := false
		for _, dep := range n.DependsOn {
			st, ok := statuses[dep]
			if !ok || st.Kind != status.Active {
				skip = true
				break
			}
		}
		if skip {
			l.Info("component skipped", "component", name)
			continue
		}

		var st status.Status
		err := errorpanic.Wrap(func() error {
			st = n.Component.Evaluate(ctx, ev)
			return nil
		})
		if err != nil {
			st = status.Blockedf("%s", err.Error())
		}

		statuses[name] = st
		evaluated = append(evaluated, st)
		l.Info("component evaluated", "component", name, "status", st.String())
	}

	agg := status.Aggregate(evaluated)
	l.Info("run complete", "aggregate", agg.String())

	return Result{Aggregate: agg, Statuses: statuses}
}
