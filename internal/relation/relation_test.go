package relation

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/pkg/status"
)

type staticCreds string

func (s staticCreds) Current() string { return string(s) }

type recordingWriter struct {
	published []struct {
		app     string
		version string
		payload Payload
	}
}

func (w *recordingWriter) Publish(_ context.Context, rel engine.Relation, version string, p Payload) error {
	w.published = append(w.published, struct {
		app     string
		version string
		payload Payload
	}{rel.App, version, p})
	return nil
}

func newBroadcaster(w Writer) *Broadcaster {
	return NewBroadcaster(logr.Discard(), staticCreds("GENERATEDSECRET"), w)
}

func storageEvent(relations ...engine.Relation) engine.Event {
	return engine.Event{
		Kind:      "relation-changed",
		App:       "minio",
		Namespace: "kubeflow",
		Config:    config.Config{Port: 9000, ConsolePort: 9001, AccessKey: "minio", Mode: config.ModeServer},
		Relations: relations,
	}
}

func TestEvaluate_IncompatibleVersion(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)

	st := b.Evaluate(context.Background(), storageEvent(engine.Relation{
		App:               "argo-controller",
		Channel:           Channel,
		SupportedVersions: []string{"v2"},
	}))

	if st.Kind != status.Blocked {
		t.Fatalf("Evaluate() = %v, want Blocked", st)
	}
	if !strings.Contains(st.Message, "argo-controller") {
		t.Errorf("message %q does not name the incompatible app", st.Message)
	}
	if len(w.published) != 0 {
		t.Errorf("published %d payloads, want 0", len(w.published))
	}
}

func TestEvaluate_NoVersionsListed(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)

	st := b.Evaluate(context.Background(), storageEvent(engine.Relation{
		App:     "argo-controller",
		Channel: Channel,
	}))

	if st.Kind != status.Waiting {
		t.Fatalf("Evaluate() = %v, want Waiting", st)
	}
	if !strings.Contains(st.Message, "argo-controller") {
		t.Errorf("message %q does not name the unversioned app", st.Message)
	}
	if len(w.published) != 0 {
		t.Errorf("published %d payloads, want 0", len(w.published))
	}
}

func TestEvaluate_PublishesPayload(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)

	st := b.Evaluate(context.Background(), storageEvent(engine.Relation{
		App:               "argo-controller",
		Channel:           Channel,
		SupportedVersions: []string{"v1"},
	}))

	if st.Kind != status.Active {
		t.Fatalf("Evaluate() = %v, want Active", st)
	}
	if len(w.published) != 1 {
		t.Fatalf("published %d payloads, want 1", len(w.published))
	}

	got := w.published[0]
	if got.version != "v1" {
		t.Errorf("negotiated version = %q, want v1", got.version)
	}
	want := Payload{
		AccessKey: "minio",
		SecretKey: "GENERATEDSECRET",
		Port:      9000,
		Secure:    false,
		Namespace: "kubeflow",
		Service:   "minio",
	}
	if got.payload != want {
		t.Errorf("payload = %+v, want %+v", got.payload, want)
	}
}

func TestEvaluate_RepublishIsIdempotent(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)
	ev := storageEvent(engine.Relation{
		App:               "argo-controller",
		Channel:           Channel,
		SupportedVersions: []string{"v1"},
	})

	for i := 0; i < 3; i++ {
		if st := b.Evaluate(context.Background(), ev); st.Kind != status.Active {
			t.Fatalf("Evaluate() = %v, want Active", st)
		}
	}

	// level-triggered: every event republishes, with identical content
	if len(w.published) != 3 {
		t.Fatalf("published %d payloads, want 3", len(w.published))
	}
	for i := 1; i < len(w.published); i++ {
		if w.published[i].payload != w.published[0].payload {
			t.Errorf("payload %d differs from the first publish", i)
		}
	}
}

func TestEvaluate_OtherChannelsIgnored(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)

	st := b.Evaluate(context.Background(), storageEvent(engine.Relation{
		App:               "grafana",
		Channel:           "dashboard",
		SupportedVersions: []string{"v9"},
	}))

	if st.Kind != status.Active {
		t.Fatalf("Evaluate() = %v, want Active for unrelated channel", st)
	}
	if len(w.published) != 0 {
		t.Errorf("published %d payloads, want 0", len(w.published))
	}
}

func TestEvaluate_InvalidConfigNeverPublishes(t *testing.T) {
	w := &recordingWriter{}
	b := newBroadcaster(w)

	ev := storageEvent(engine.Relation{
		App:               "argo-controller",
		Channel:           Channel,
		SupportedVersions: []string{"v1"},
	})
	ev.Config.Mode = config.ModeGateway
	ev.Config.GatewayStorageService = ""

	st := b.Evaluate(context.Background(), ev)

	if st.Kind != status.Blocked {
		t.Fatalf("Evaluate() = %v, want Blocked", st)
	}
	if len(w.published) != 0 {
		t.Errorf("published %d payloads for an unstartable workload, want 0", len(w.published))
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		ours   []string
		theirs []string
		want   string
		wantOk bool
	}{
		{"single match", []string{"v1"}, []string{"v1"}, "v1", true},
		{"no overlap", []string{"v1"}, []string{"v2", "v3"}, "", false},
		{"highest mutual wins", []string{"v1", "v2"}, []string{"v1", "v2"}, "v2", true},
		{"advertised order is irrelevant", []string{"v1", "v2"}, []string{"v2", "v1"}, "v2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := negotiate(tt.ours, tt.theirs)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("negotiate(%v, %v) = (%q, %v), want (%q, %v)",
					tt.ours, tt.theirs, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}
