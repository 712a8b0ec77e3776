package gate

import (
	"context"
	"sync/atomic"

	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

const Name = "leadership-gate"

// Gate reports whether this replica is the authorized writer. Every mutating
// component sits behind it in the graph, which is the single-writer invariant:
// non-leaders never touch shared or external state.
//
// Leadership is owned by the host platform. The atomic flag is fed from the
// manager's elected channel and re-read on every event, never cached here.
type Gate struct {
	isLeader *atomic.Bool
}

func New(isLeader *atomic.Bool) *Gate {
	return &Gate{isLeader: isLeader}
}

func (g *Gate) Name() string { return Name }

func (g *Gate) Evaluate(_ context.Context, _ engine.Event) status.Status {
	if g.isLeader.Load() {
		return status.ActiveStatus()
	}
	return status.Waitingf("not leader")
}
