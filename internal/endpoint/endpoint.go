package endpoint

import (
	"context"

	v1core "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

const Name = "endpoint-publisher"

// AppLabel is the stable identifier the endpoint selects workload pods by.
const AppLabel = "app.kubernetes.io/name"

// ServiceStore is the slice of the host platform's resource store the
// publisher needs.
type ServiceStore interface {
	// Get returns the live service, or ok=false when it does not exist.
	Get(ctx context.Context, namespace, name string) (*v1core.Service, bool, error)
	Create(ctx context.Context, svc *v1core.Service) error
	// Patch merge-patches the desired ports and selector onto the live object.
	Patch(ctx context.Context, desired *v1core.Service) error
}

// Publisher reconciles the externally routable endpoint against
// configuration. It tolerates being invoked on every event: when the live
// port mapping already matches the desired one, no mutation is issued.
type Publisher struct {
	store ServiceStore
}

func NewPublisher(store ServiceStore) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Name() string { return Name }

func (p *Publisher) Evaluate(ctx context.Context, ev engine.Event) status.Status {
	desired := Desired(ev.App, ev.Namespace, ev.Config.Port, ev.Config.ConsolePort)

	live, ok, err := p.store.Get(ctx, ev.Namespace, ev.App)
	if err != nil {
		return status.Blockedf("fetch endpoint: %s", err.Error())
	}

	switch {
	case !ok:
		if err := p.store.Create(ctx, desired); err != nil {
			return status.Blockedf("create endpoint: %s", err.Error())
		}
	case portsMatch(live.Spec.Ports, desired.Spec.Ports):
		// already in the desired state, leave it alone
		return status.ActiveStatus()
	default:
		if err := p.store.Patch(ctx, desired); err != nil {
			return status.Blockedf("patch endpoint: %s", err.Error())
		}
	}

	// re-check: the patch is only as good as what the store now reports
	live, ok, err = p.store.Get(ctx, ev.Namespace, ev.App)
	if err != nil {
		return status.Blockedf("fetch endpoint: %s", err.Error())
	}
	if !ok || !portsMatch(live.Spec.Ports, desired.Spec.Ports) {
		return status.Blockedf("endpoint was not patched correctly")
	}
	return status.ActiveStatus()
}

// Desired builds the endpoint object for the given configuration.
func Desired(app, namespace string, port, consolePort int) *v1core.Service {
	return &v1core.Service{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      app,
			Labels:    map[string]string{AppLabel: app},
		},
		Spec: v1core.ServiceSpec{
			Type:     v1core.ServiceTypeClusterIP,
			Selector: map[string]string{AppLabel: app},
			Ports: []v1core.ServicePort{
				{
					Name:       "minio",
					Port:       int32(port),
					TargetPort: intstr.FromInt(port),
				},
				{
					Name:       "console",
					Port:       int32(consolePort),
					TargetPort: intstr.FromInt(consolePort),
				},
			},
		},
	}
}

// portsMatch compares (port, targetPort) pairs as unordered sets.
func portsMatch(live, desired []v1core.ServicePort) bool {
	if len(live) != len(desired) {
		return false
	}
	type pair struct {
		port   int32
		target intstr.IntOrString
	}
	seen := make(map[pair]int, len(live))
	for _, p := range live {
		seen[pair{p.Port, p.TargetPort}]++
	}
	for _, p := range desired {
		key := pair{p.Port, p.TargetPort}
		if seen[key] == 0 {
			return false
		}
		seen[key]--
	}
	return true
}
