package resource

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	v1core "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/minio-ops/minio-operator/api/v1alpha1"
	"github.com/minio-ops/minio-operator/internal/endpoint"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/internal/relation"
	"github.com/minio-ops/minio-operator/internal/workload"
)

const specHashAnnotation = "operator.minio-ops.io/spec-hash"

// Manager owns all direct Kubernetes object I/O on behalf of the components:
// the Service for the endpoint publisher, the Deployment and its secrets for
// the workload spec, StorageRelation status for the broadcaster.
type Manager struct {
	client client.Client
	log    logr.Logger
	image  string
}

func NewManager(c client.Client, log logr.Logger, image string) *Manager {
	return &Manager{client: c, log: log, image: image}
}

// Get implements endpoint.ServiceStore.
func (m *Manager) Get(ctx context.Context, namespace, name string) (*v1core.Service, bool, error) {
	svc := &v1core.Service{}
	err := m.client.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, svc)
	if k8serrors.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "get service")
	}
	return svc, true, nil
}

// Create implements endpoint.ServiceStore.
func (m *Manager) Create(ctx context.Context, svc *v1core.Service) error {
	m.log.Info("creating endpoint service", "name", svc.Name)
	return errors.Wrap(m.client.Create(ctx, svc), "create service")
}

// Patch implements endpoint.ServiceStore: a merge-patch of the desired ports
// and selector onto the live object.
func (m *Manager) Patch(ctx context.Context, desired *v1core.Service) error {
	live := &v1core.Service{}
	if err := m.client.Get(ctx, client.ObjectKeyFromObject(desired), live); err != nil {
		return errors.Wrap(err, "get service for patch")
	}
	origin := live.DeepCopy()
	live.Spec.Ports = desired.Spec.Ports
	live.Spec.Selector = desired.Spec.Selector
	m.log.Info("patching endpoint service", "name", desired.Name)
	return errors.Wrap(m.client.Patch(ctx, live, client.MergeFrom(origin)), "patch service")
}

// Apply implements workload.Applier: it renders the derived spec into the
// objects the process supervisor consumes. The spec hash rides on the pod
// template, so the workload restarts only when the serialized spec changes.
func (m *Manager) Apply(ctx context.Context, app, namespace string, spec workload.Spec, port, consolePort int) error {
	hash, err := spec.Hash()
	if err != nil {
		return errors.Wrap(err, "hash workload spec")
	}

	if err := m.applyEnvSecret(ctx, app, namespace, spec.Env); err != nil {
		return err
	}
	if err := m.applyFileSecret(ctx, app, namespace, spec.Mounts); err != nil {
		return err
	}
	return m.applyDeployment(ctx, app, namespace, spec, hash, port, consolePort)
}

func (m *Manager) applyEnvSecret(ctx context.Context, app, namespace string, env map[string]string) error {
	secret := &v1core.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: app + "-secret"},
	}
	_, err := controllerutil.CreateOrUpdate(ctx, m.client, secret, func() error {
		secret.StringData = env
		return nil
	})
	return errors.Wrap(err, "apply env secret")
}

func (m *Manager) applyFileSecret(ctx context.Context, app, namespace string, mounts []workload.Mount) error {
	if len(mounts) == 0 {
		return nil
	}
	secret := &v1core.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: app + "-files"},
	}
	_, err := controllerutil.CreateOrUpdate(ctx, m.client, secret, func() error {
		data := make(map[string]string, len(mounts))
		for _, mnt := range mounts {
			data[fileKey(mnt.Path)] = mnt.Content
		}
		secret.StringData = data
		return nil
	})
	return errors.Wrap(err, "apply file secret")
}

func (m *Manager) applyDeployment(ctx context.Context, app, namespace string, spec workload.Spec, hash string, port, consolePort int) error {
	deploy := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: app},
	}

	_, err := controllerutil.CreateOrUpdate(ctx, m.client, deploy, func() error {
		labels := map[string]string{endpoint.AppLabel: app}

		deploy.Spec.Selector = &metav1.LabelSelector{MatchLabels: labels}
		deploy.Spec.Template.ObjectMeta.Labels = labels
		if deploy.Spec.Template.ObjectMeta.Annotations == nil {
			deploy.Spec.Template.ObjectMeta.Annotations = map[string]string{}
		}
		deploy.Spec.Template.ObjectMeta.Annotations[specHashAnnotation] = hash

		container := v1core.Container{
			Name:    app,
			Image:   m.image,
			Command: []string{spec.Command},
			Args:    spec.Args,
			Ports: []v1core.ContainerPort{
				{Name: "minio", ContainerPort: int32(port)},
				{Name: "console", ContainerPort: int32(consolePort)},
			},
			EnvFrom: []v1core.EnvFromSource{{
				SecretRef: &v1core.SecretEnvSource{
					LocalObjectReference: v1core.LocalObjectReference{Name: app + "-secret"},
				},
			}},
			ReadinessProbe: httpProbe("/minio/health/ready", port),
			LivenessProbe:  httpProbe("/minio/health/live", port),
		}

		if len(spec.Mounts) > 0 {
			var items []v1core.KeyToPath
			for _, mnt := range spec.Mounts {
				mode := int32(mnt.Mode)
				items = append(items, v1core.KeyToPath{
					Key:  fileKey(mnt.Path),
					Path: strings.TrimPrefix(mnt.Path, workload.CertsDir+"/"),
					Mode: &mode,
				})
			}
			deploy.Spec.Template.Spec.Volumes = []v1core.Volume{{
				Name: "files",
				VolumeSource: v1core.VolumeSource{
					Secret: &v1core.SecretVolumeSource{
						SecretName: app + "-files",
						Items:      items,
					},
				},
			}}
			container.VolumeMounts = []v1core.VolumeMount{{
				Name:      "files",
				MountPath: workload.CertsDir,
				ReadOnly:  true,
			}}
		} else {
			deploy.Spec.Template.Spec.Volumes = nil
		}

		deploy.Spec.Template.Spec.Containers = []v1core.Container{container}
		return nil
	})
	return errors.Wrap(err, "apply deployment")
}

func httpProbe(path string, port int) *v1core.Probe {
	return &v1core.Probe{
		PeriodSeconds: 30,
		ProbeHandler: v1core.ProbeHandler{
			HTTPGet: &v1core.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt(port),
			},
		},
	}
}

// Publish implements relation.Writer: the payload lands in the relation
// object's status, the one channel only the leader writes. Fire-and-forget,
// nothing is read back for validation.
func (m *Manager) Publish(ctx context.Context, rel engine.Relation, version string, p relation.Payload) error {
	obj := &v1alpha1.StorageRelation{}
	if err := m.client.Get(ctx, client.ObjectKey{Namespace: rel.Namespace, Name: rel.Name}, obj); err != nil {
		return errors.Wrap(err, "get relation")
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode payload")
	}

	origin := obj.DeepCopy()
	obj.Status.Version = version
	obj.Status.Data = string(data)

	m.log.Info("publishing relation data", "relation", rel.Name, "app", rel.App, "version", version)
	return errors.Wrap(m.client.Status().Patch(ctx, obj, client.MergeFrom(origin)), "patch relation status")
}

// fileKey flattens a mount path into a legal secret key.
func fileKey(path string) string {
	return strings.ReplaceAll(strings.TrimPrefix(path, workload.CertsDir+"/"), "/", "-")
}
