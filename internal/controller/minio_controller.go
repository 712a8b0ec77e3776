/*
Copyright 2023.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/source"

	operatorv1alpha1 "github.com/minio-ops/minio-operator/api/v1alpha1"
	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/internal/relation"
	"github.com/minio-ops/minio-operator/pkg/status"
)

// MinioReconciler drives the reconciliation engine from host platform events.
// One reconcile request maps to exactly one engine run; controller-runtime
// serializes requests per object, so runs never overlap.
type MinioReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Engine   *engine.Engine
	IsLeader *atomic.Bool
	// Defaults are the operator-wide configuration values per-object specs
	// overlay.
	Defaults config.Config
	// OnAggregate, when set, receives the aggregate of every run. The
	// health endpoint hangs off it.
	OnAggregate func(status.Status)

	// leadershipCh receives events when leadership changes to trigger requeue
	leadershipCh chan event.GenericEvent
	// externalCh receives events from out-of-cluster triggers
	externalCh chan event.GenericEvent
}

//+kubebuilder:rbac:groups=operator.minio-ops.io,resources=minios,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=operator.minio-ops.io,resources=minios/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=operator.minio-ops.io,resources=storagerelations,verbs=get;list;watch
//+kubebuilder:rbac:groups=operator.minio-ops.io,resources=storagerelations/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch
//+kubebuilder:rbac:groups=core,resources=services,verbs=get;list;watch;create;update;patch
//+kubebuilder:rbac:groups=core,resources=secrets,verbs=get;list;watch;create;update;patch

// Reconcile re-derives the full desired state of one managed instance from
// current inputs. Level-triggered: the trigger's identity does not matter,
// every run recomputes everything.
func (r *MinioReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	l := log.FromContext(ctx)
	l.Info("reconcile", "namespace", req.Namespace, "name", req.Name)

	instance := &operatorv1alpha1.Minio{}
	if err := r.Get(ctx, req.NamespacedName, instance); err != nil {
		if errors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("get minio: %w", err)
	}

	if !instance.ObjectMeta.DeletionTimestamp.IsZero() {
		// dependents are garbage-collected by the platform
		return ctrl.Result{}, nil
	}

	relations, err := r.collectRelations(ctx, instance)
	if err != nil {
		return ctrl.Result{}, fmt.Errorf("collect relations: %w", err)
	}

	ev := engine.Event{
		Kind:      "config-changed",
		App:       instance.Name,
		Namespace: instance.Namespace,
		Config:    r.Defaults.Merge(specConfig(instance.Spec)),
		Relations: relations,
	}

	if r.IsLeader.Load() {
		// surfaced while external objects are being applied
		if err := r.patchStatus(ctx, instance, func(st *operatorv1alpha1.MinioStatus) {
			st.Status = status.Maintenance.String()
			st.Message = "reconciling"
		}); err != nil {
			return ctrl.Result{}, err
		}
	}

	result := r.Engine.Run(ctx, ev)
	if r.OnAggregate != nil {
		r.OnAggregate(result.Aggregate)
	}

	// Only leader updates status
	if !r.IsLeader.Load() {
		return ctrl.Result{}, nil
	}

	if err := r.patchStatus(ctx, instance, func(st *operatorv1alpha1.MinioStatus) {
		st.Status = result.Aggregate.Kind.String()
		st.Message = result.Aggregate.Message
		st.Components = componentConditions(result.Statuses)
		st.ObservedGeneration = instance.ObjectMeta.Generation
		t := metav1.NewTime(time.Now())
		st.LastUpdateTime = &t
	}); err != nil {
		return ctrl.Result{}, err
	}

	return ctrl.Result{RequeueAfter: 5 * time.Minute}, nil
}

func (r *MinioReconciler) patchStatus(ctx context.Context, instance *operatorv1alpha1.Minio, mutate func(*operatorv1alpha1.MinioStatus)) error {
	origin := instance.DeepCopy()
	mutate(&instance.Status)
	if err := r.Status().Patch(ctx, instance, client.MergeFrom(origin)); err != nil {
		return fmt.Errorf("patch status: %w", err)
	}
	return nil
}

// collectRelations lists the relation objects pointing at this instance and
// decodes what each consumer advertised.
func (r *MinioReconciler) collectRelations(ctx context.Context, instance *operatorv1alpha1.Minio) ([]engine.Relation, error) {
	list := &operatorv1alpha1.StorageRelationList{}
	if err := r.List(ctx, list,
		client.InNamespace(instance.Namespace),
		client.MatchingLabels{operatorv1alpha1.InstanceLabel: instance.Name},
	); err != nil {
		return nil, err
	}

	relations := make([]engine.Relation, 0, len(list.Items))
	for _, item := range list.Items {
		channel := item.Spec.Channel
		if channel == "" {
			channel = relation.Channel
		}

		var versions []string
		if item.Spec.SupportedVersions != "" {
			if err := yaml.Unmarshal([]byte(item.Spec.SupportedVersions), &versions); err != nil {
				// treat garbage the same as nothing advertised
				versions = nil
			}
		}

		relations = append(relations, engine.Relation{
			Name:              item.Name,
			Namespace:         item.Namespace,
			App:               item.Spec.App,
			Channel:           channel,
			SupportedVersions: versions,
		})
	}
	return relations, nil
}

func componentConditions(statuses map[string]status.Status) []operatorv1alpha1.ComponentCondition {
	conditions := make([]operatorv1alpha1.ComponentCondition, 0, len(statuses))
	for name, st := range statuses {
		conditions = append(conditions, operatorv1alpha1.ComponentCondition{
			Name:    name,
			Status:  st.Kind.String(),
			Message: st.Message,
		})
	}
	sort.Slice(conditions, func(i, j int) bool { return conditions[i].Name < conditions[j].Name })
	return conditions
}

func specConfig(spec operatorv1alpha1.MinioSpec) config.Config {
	return config.Config{
		Port:                   spec.Port,
		ConsolePort:            spec.ConsolePort,
		AccessKey:              spec.AccessKey,
		SecretKey:              spec.SecretKey,
		Mode:                   spec.Mode,
		GatewayStorageService:  spec.GatewayStorageService,
		StorageServiceEndpoint: spec.StorageServiceEndpoint,
		SSLKey:                 spec.SSLKey,
		SSLCert:                spec.SSLCert,
		SSLCA:                  spec.SSLCA,
	}
}

// RequeueAllOnLeadershipChange triggers requeue of all instances when this
// replica's leadership status flips.
func (r *MinioReconciler) RequeueAllOnLeadershipChange() {
	if r.leadershipCh == nil {
		return
	}
	select {
	case r.leadershipCh <- event.GenericEvent{Object: &operatorv1alpha1.Minio{}}:
	default:
	}
}

// NotifyExternal requeues one instance on behalf of an out-of-cluster
// trigger.
func (r *MinioReconciler) NotifyExternal(namespace, name string) {
	if r.externalCh == nil {
		return
	}
	obj := &operatorv1alpha1.Minio{}
	obj.Namespace = namespace
	obj.Name = name
	select {
	case r.externalCh <- event.GenericEvent{Object: obj}:
	default:
	}
}

// SetupWithManager sets up the controller with the Manager.
func (r *MinioReconciler) SetupWithManager(mgr ctrl.Manager) error {
	r.leadershipCh = make(chan event.GenericEvent, 1)
	r.externalCh = make(chan event.GenericEvent, 16)

	allInstances := handler.EnqueueRequestsFromMapFunc(func(ctx context.Context, _ client.Object) []ctrl.Request {
		var instances operatorv1alpha1.MinioList
		if err := r.List(ctx, &instances); err != nil {
			return nil
		}
		var requests []ctrl.Request
		for _, item := range instances.Items {
			requests = append(requests, ctrl.Request{
				NamespacedName: types.NamespacedName{Namespace: item.Namespace, Name: item.Name},
			})
		}
		return requests
	})

	return ctrl.NewControllerManagedBy(mgr).
		For(&operatorv1alpha1.Minio{}).
		WithEventFilter(GenerationChangedPredicate{}).
		Watches(&operatorv1alpha1.StorageRelation{},
			handler.EnqueueRequestsFromMapFunc(func(ctx context.Context, obj client.Object) []ctrl.Request {
				owner, ok := obj.GetLabels()[operatorv1alpha1.InstanceLabel]
				if !ok {
					return nil
				}
				return []ctrl.Request{{
					NamespacedName: types.NamespacedName{Namespace: obj.GetNamespace(), Name: owner},
				}}
			})).
		WatchesRawSource(&source.Channel{Source: r.leadershipCh}, allInstances).
		WatchesRawSource(&source.Channel{Source: r.externalCh}, handler.EnqueueRequestsFromMapFunc(
			func(_ context.Context, obj client.Object) []ctrl.Request {
				return []ctrl.Request{{
					NamespacedName: types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()},
				}}
			})).
		Complete(r)
}
