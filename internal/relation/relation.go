package relation

import (
	"context"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/goccy/go-json"
	goversion "github.com/hashicorp/go-version"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

const Name = "relation-broadcaster"

// Channel is the data-exchange channel this provider serves.
const Channel = "object-storage"

// SupportedVersions is the ordered set of protocol versions this provider
// can speak.
var SupportedVersions = []string{"v1"}

// Payload is the connection information published to each compatible
// consumer. Field names are the wire schema.
type Payload struct {
	AccessKey string `json:"access-key" yaml:"access-key"`
	SecretKey string `json:"secret-key" yaml:"secret-key"`
	Port      int    `json:"port" yaml:"port"`
	Secure    bool   `json:"secure" yaml:"secure"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Service   string `json:"service" yaml:"service"`
}

// Writer is the leader-authorized write channel owned by the host platform.
// Writes are fire-and-forget: the broadcaster never reads back what it wrote.
type Writer interface {
	Publish(ctx context.Context, rel engine.Relation, version string, p Payload) error
}

// Credentials exposes the root credential resolved earlier in the same run.
type Credentials interface {
	Current() string
}

// Broadcaster negotiates a protocol version with each related consumer and
// publishes connection credentials. Broadcasting is level-triggered: every
// event re-derives and re-publishes the payload, identical inputs producing
// an identical payload.
type Broadcaster struct {
	log    logr.Logger
	creds  Credentials
	writer Writer

	// lastSent keeps a digest of the most recent payload per consumer,
	// for observability only. Republishing is never suppressed.
	lastSent cmap.ConcurrentMap[string, string]
}

func NewBroadcaster(log logr.Logger, creds Credentials, writer Writer) *Broadcaster {
	return &Broadcaster{
		log:      log,
		creds:    creds,
		writer:   writer,
		lastSent: cmap.New[string](),
	}
}

func (b *Broadcaster) Name() string { return Name }

func (b *Broadcaster) Evaluate(ctx context.Context, ev engine.Event) status.Status {
	// never hand out credentials for a workload that cannot start
	if err := ev.Config.Validate(); err != nil {
		return status.Blockedf("%s", err.Error())
	}

	var unversioned, incompatible []string
	type match struct {
		rel     engine.Relation
		version string
	}
	var matches []match

	for _, rel := range ev.Relations {
		if rel.Channel != Channel {
			continue
		}
		if len(rel.SupportedVersions) == 0 {
			unversioned = append(unversioned, rel.App)
			continue
		}
		ver, ok := negotiate(SupportedVersions, rel.SupportedVersions)
		if !ok {
			incompatible = append(incompatible, rel.App)
			continue
		}
		matches = append(matches, match{rel: rel, version: ver})
	}

	if len(incompatible) > 0 {
		return status.Blockedf("No compatible %s versions found for apps: %s",
			Channel, joinApps(incompatible))
	}
	if len(unversioned) > 0 {
		return status.Waitingf("List of %s versions not found for apps: %s",
			Channel, joinApps(unversioned))
	}

	payload := Payload{
		AccessKey: ev.Config.AccessKey,
		SecretKey: b.creds.Current(),
		Port:      ev.Config.Port,
		Secure:    false,
		Namespace: ev.Namespace,
		Service:   ev.App,
	}

	for _, m := range matches {
		if err := b.writer.Publish(ctx, m.rel, m.version, payload); err != nil {
			return status.Blockedf("publish to %s: %s", m.rel.App, err.Error())
		}
		b.noteSent(m.rel.App, payload)
	}
	return status.ActiveStatus()
}

func (b *Broadcaster) noteSent(app string, p Payload) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	digest := string(raw)
	if prev, ok := b.lastSent.Get(app); ok && prev == digest {
		b.log.V(1).Info("payload unchanged, republished anyway", "app", app)
	}
	b.lastSent.Set(app, digest)
}

// negotiate picks the highest version both sides speak.
func negotiate(ours, theirs []string) (string, bool) {
	supported := make(map[string]struct{}, len(ours))
	for _, v := range ours {
		supported[v] = struct{}{}
	}

	var (
		best    string
		bestVer *goversion.Version
	)
	for _, t := range theirs {
		if _, ok := supported[t]; !ok {
			continue
		}
		v, err := goversion.NewVersion(t)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = t, v
		}
	}
	return best, bestVer != nil
}

func joinApps(apps []string) string {
	sort.Strings(apps)
	return strings.Join(apps, ", ")
}
