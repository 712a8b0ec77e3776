package secret

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/internal/kv"
	"github.com/minio-ops/minio-operator/pkg/status"
)

const Name = "secret-store"

const (
	generatedLength   = 30
	minExplicitLength = 8

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// storeKey scopes the persisted credential to one managed instance.
func storeKey(namespace, app string) string {
	return namespace + "." + app + ".secret-key"
}

// Store resolves the workload's root credential. An explicit configuration
// value always wins but is never persisted; otherwise the store returns the
// generated credential, creating and persisting it exactly once per instance
// lifetime.
type Store struct {
	kv kv.Store

	current string
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

func (s *Store) Name() string { return Name }

// Current returns the credential resolved by the latest evaluation. The
// engine guarantees evaluation completes before any consumer runs.
func (s *Store) Current() string {
	return s.current
}

func (s *Store) Evaluate(ctx context.Context, ev engine.Event) status.Status {
	resolved, err := s.Resolve(ctx, storeKey(ev.Namespace, ev.App), ev.Config.SecretKey)
	if err != nil {
		return status.Blockedf("%s", err.Error())
	}
	s.current = resolved
	return status.ActiveStatus()
}

// Resolve returns the effective credential for the instance identified by key.
func (s *Store) Resolve(ctx context.Context, key string, explicit string) (string, error) {
	if explicit != "" {
		if len(explicit) < minExplicitLength {
			return "", config.Errorf(config.ReasonSecretTooShort,
				"secret-key must be at least %d characters", minExplicitLength)
		}
		return explicit, nil
	}

	existing, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", errors.Wrap(err, "read persisted secret")
	}
	if ok {
		return existing, nil
	}

	generated, err := generate(generatedLength)
	if err != nil {
		return "", errors.Wrap(err, "generate secret")
	}
	if err := s.kv.Set(ctx, key, generated); err != nil {
		return "", errors.Wrap(err, "persist generated secret")
	}
	return generated, nil
}

func generate(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
