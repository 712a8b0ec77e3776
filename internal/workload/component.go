package workload

import (
	"context"

	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

const Name = "workload-spec"

// Applier hands the derived spec to the host platform's process supervisor.
// Ports ride along for container ports and health probes.
type Applier interface {
	Apply(ctx context.Context, app, namespace string, spec Spec, port, consolePort int) error
}

// Credentials exposes the root credential resolved earlier in the same run.
type Credentials interface {
	Current() string
}

// Builder derives the workload spec and applies it. Sits behind the
// leadership gate and the secret store in the graph.
type Builder struct {
	creds   Credentials
	applier Applier
}

func NewBuilder(creds Credentials, applier Applier) *Builder {
	return &Builder{creds: creds, applier: applier}
}

func (b *Builder) Name() string { return Name }

func (b *Builder) Evaluate(ctx context.Context, ev engine.Event) status.Status {
	spec, err := Build(ev.Config, b.creds.Current())
	if err != nil {
		return status.Blockedf("%s", err.Error())
	}
	if err := b.applier.Apply(ctx, ev.App, ev.Namespace, spec, ev.Config.Port, ev.Config.ConsolePort); err != nil {
		return status.Blockedf("apply workload spec: %s", err.Error())
	}
	return status.ActiveStatus()
}
