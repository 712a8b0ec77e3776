package endpoint

import (
	"context"
	"testing"

	v1core "k8s.io/api/core/v1"

	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

// fakeStore is an in-memory ServiceStore counting mutations.
type fakeStore struct {
	live    *v1core.Service
	creates int
	patches int

	// applyPatch controls whether Patch actually lands, to simulate a
	// store that drops the mutation.
	applyPatch bool
}

func (f *fakeStore) Get(_ context.Context, _, _ string) (*v1core.Service, bool, error) {
	if f.live == nil {
		return nil, false, nil
	}
	return f.live.DeepCopy(), true, nil
}

func (f *fakeStore) Create(_ context.Context, svc *v1core.Service) error {
	f.creates++
	f.live = svc.DeepCopy()
	return nil
}

func (f *fakeStore) Patch(_ context.Context, desired *v1core.Service) error {
	f.patches++
	if f.applyPatch {
		f.live.Spec.Ports = desired.Spec.Ports
		f.live.Spec.Selector = desired.Spec.Selector
	}
	return nil
}

func event() engine.Event {
	return engine.Event{
		Kind:      "config-changed",
		App:       "minio",
		Namespace: "kubeflow",
		Config:    config.Config{Port: 9000, ConsolePort: 9001, Mode: config.ModeServer},
	}
}

func TestEvaluate_CreatesWhenAbsent(t *testing.T) {
	store := &fakeStore{applyPatch: true}
	p := NewPublisher(store)

	st := p.Evaluate(context.Background(), event())
	if st.Kind != status.Active {
		t.Fatalf("Evaluate() = %v, want Active", st)
	}
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
	if store.patches != 0 {
		t.Errorf("patches = %d, want 0", store.patches)
	}
}

func TestEvaluate_NoPatchWhenAlreadyMatching(t *testing.T) {
	store := &fakeStore{
		live:       Desired("minio", "kubeflow", 9000, 9001),
		applyPatch: true,
	}
	p := NewPublisher(store)

	for i := 0; i < 3; i++ {
		st := p.Evaluate(context.Background(), event())
		if st.Kind != status.Active {
			t.Fatalf("Evaluate() = %v, want Active", st)
		}
	}
	if store.patches != 0 {
		t.Errorf("patches = %d, want 0 when live already matches", store.patches)
	}
	if store.creates != 0 {
		t.Errorf("creates = %d, want 0", store.creates)
	}
}

func TestEvaluate_MatchIgnoresPortOrder(t *testing.T) {
	live := Desired("minio", "kubeflow", 9000, 9001)
	live.Spec.Ports[0], live.Spec.Ports[1] = live.Spec.Ports[1], live.Spec.Ports[0]
	store := &fakeStore{live: live, applyPatch: true}
	p := NewPublisher(store)

	st := p.Evaluate(context.Background(), event())
	if st.Kind != status.Active {
		t.Fatalf("Evaluate() = %v, want Active", st)
	}
	if store.patches != 0 {
		t.Errorf("patches = %d, want 0 for reordered but equal ports", store.patches)
	}
}

func TestEvaluate_PatchesWhenDrifted(t *testing.T) {
	store := &fakeStore{
		live:       Desired("minio", "kubeflow", 8080, 8081),
		applyPatch: true,
	}
	p := NewPublisher(store)

	st := p.Evaluate(context.Background(), event())
	if st.Kind != status.Active {
		t.Fatalf("Evaluate() = %v, want Active", st)
	}
	if store.patches != 1 {
		t.Errorf("patches = %d, want 1", store.patches)
	}
}

func TestEvaluate_BlockedWhenRecheckDisagrees(t *testing.T) {
	store := &fakeStore{
		live:       Desired("minio", "kubeflow", 8080, 8081),
		applyPatch: false, // the store silently drops the patch
	}
	p := NewPublisher(store)

	st := p.Evaluate(context.Background(), event())
	if st.Kind != status.Blocked {
		t.Errorf("Evaluate() = %v, want Blocked on re-check mismatch", st)
	}
}
