package trigger

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// Subject carries "namespace/name" payloads announcing that an instance's
// inputs changed outside the cluster's view (e.g. an upstream credential
// rotation the operator should fold in on its next run).
const Subject = "minio.operator.events"

// Notifier requeues one instance for reconciliation.
type Notifier func(namespace, name string)

// Listener turns NATS messages into reconcile triggers. Purely additive:
// the operator is fully functional without it, events are never lost —
// the periodic resync covers anything a dropped message would have caught.
type Listener struct {
	log    logr.Logger
	conn   *nats.Conn
	notify Notifier
}

func NewListener(log logr.Logger, url string, notify Notifier) (*Listener, error) {
	conn, err := nats.Connect(url, nats.Name("minio-operator"))
	if err != nil {
		return nil, errors.Wrap(err, "connect to nats")
	}
	return &Listener{log: log, conn: conn, notify: notify}, nil
}

// Start subscribes and blocks until the context is cancelled.
func (l *Listener) Start(ctx context.Context) error {
	sub, err := l.conn.Subscribe(Subject, func(msg *nats.Msg) {
		namespace, name, ok := strings.Cut(string(msg.Data), "/")
		if !ok {
			l.log.Info("ignoring malformed trigger", "data", string(msg.Data))
			return
		}
		l.log.Info("external trigger", "namespace", namespace, "name", name)
		l.notify(namespace, name)
	})
	if err != nil {
		return errors.Wrap(err, "subscribe")
	}
	defer sub.Unsubscribe()
	defer l.conn.Close()

	<-ctx.Done()
	return nil
}
