package kv

import (
	"context"

	"github.com/pkg/errors"
	v1core "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// SecretStore persists values in a Kubernetes Secret next to the managed
// workload. The Secret is created lazily on the first write.
type SecretStore struct {
	client    client.Client
	namespace string
	name      string
}

func NewSecretStore(c client.Client, namespace, name string) *SecretStore {
	return &SecretStore{client: c, namespace: namespace, name: name}
}

func (s *SecretStore) Get(ctx context.Context, key string) (string, bool, error) {
	secret := &v1core.Secret{}
	err := s.client.Get(ctx, client.ObjectKey{Namespace: s.namespace, Name: s.name}, secret)
	if k8serrors.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "get state secret")
	}
	v, ok := secret.Data[key]
	return string(v), ok, nil
}

func (s *SecretStore) Set(ctx context.Context, key string, value string) error {
	secret := &v1core.Secret{}
	err := s.client.Get(ctx, client.ObjectKey{Namespace: s.namespace, Name: s.name}, secret)
	if k8serrors.IsNotFound(err) {
		secret = &v1core.Secret{
			ObjectMeta: metav1.ObjectMeta{
				Namespace: s.namespace,
				Name:      s.name,
			},
			StringData: map[string]string{key: value},
		}
		if err := s.client.Create(ctx, secret); err != nil {
			return errors.Wrap(err, "create state secret")
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "get state secret")
	}

	origin := secret.DeepCopy()
	if secret.StringData == nil {
		secret.StringData = map[string]string{}
	}
	secret.StringData[key] = value
	if err := s.client.Patch(ctx, secret, client.MergeFrom(origin)); err != nil {
		return errors.Wrap(err, "patch state secret")
	}
	return nil
}
