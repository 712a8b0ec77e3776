package cli

import (
	"sync/atomic"

	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/minio-ops/minio-operator/api/v1alpha1"
	"github.com/minio-ops/minio-operator/internal/config"
	"github.com/minio-ops/minio-operator/internal/controller"
	"github.com/minio-ops/minio-operator/internal/endpoint"
	"github.com/minio-ops/minio-operator/internal/engine"
	"github.com/minio-ops/minio-operator/internal/gate"
	"github.com/minio-ops/minio-operator/internal/kv"
	"github.com/minio-ops/minio-operator/internal/relation"
	"github.com/minio-ops/minio-operator/internal/resource"
	"github.com/minio-ops/minio-operator/internal/secret"
	"github.com/minio-ops/minio-operator/internal/server"
	"github.com/minio-ops/minio-operator/internal/server/services/health"
	"github.com/minio-ops/minio-operator/internal/trigger"
	"github.com/minio-ops/minio-operator/internal/workload"
)

// override by ldflags
var (
	version = "0.1.0"

	kubeconfig           string
	metricsAddr          string
	probeAddr            string
	grpcHealthAddr       string
	enableLeaderElection bool
	image                string
	natsURL              string
	configPath           string
	stateNamespace       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the operator",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {

		// re-use zerolog
		l := zerologr.New(&log.Logger)

		scheme := runtime.NewScheme()

		// register standard and custom schemas
		_ = clientgoscheme.AddToScheme(scheme)
		_ = v1alpha1.AddToScheme(scheme)

		ctrl.SetLogger(l)

		// prepare kubeconfig
		restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			// use InClusterConfig
			restConfig, err = rest.InClusterConfig()
			if err != nil {
				l.Error(err, "unable to get kubeconfig")
				return
			}
		}

		defaults, err := config.Load(configPath)
		if err != nil {
			l.Error(err, "unable to load operator defaults")
			return
		}

		mgr, err := ctrl.NewManager(restConfig, ctrl.Options{
			Scheme:                 scheme,
			Logger:                 l,
			Metrics:                metricsserver.Options{BindAddress: metricsAddr},
			HealthProbeBindAddress: probeAddr,
			LeaderElection:         enableLeaderElection,
			LeaderElectionID:       "minio-operator.minio-ops.io",
		})
		if err != nil {
			l.Error(err, "unable to create manager")
			return
		}

		var isLeader atomic.Bool

		// the dependency graph is built once per process and never mutated
		manager := resource.NewManager(mgr.GetClient(), l, image)
		secrets := secret.New(kv.NewSecretStore(mgr.GetClient(), stateNamespace, "minio-operator-state"))
		nodes := []engine.Node{
			{Component: gate.New(&isLeader)},
			{Component: secrets, DependsOn: []string{gate.Name}},
			{Component: workload.NewBuilder(secrets, manager), DependsOn: []string{secret.Name}},
			{Component: endpoint.NewPublisher(manager), DependsOn: []string{secret.Name}},
			{Component: relation.NewBroadcaster(l, secrets, manager), DependsOn: []string{secret.Name, endpoint.Name}},
		}
		eng, err := engine.New(l, nodes)
		if err != nil {
			l.Error(err, "unable to build dependency graph")
			return
		}

		checker := health.NewChecker()

		reconciler := &controller.MinioReconciler{
			Client:      mgr.GetClient(),
			Scheme:      mgr.GetScheme(),
			Engine:      eng,
			IsLeader:    &isLeader,
			Defaults:    defaults,
			OnAggregate: checker.SetAggregate,
		}
		if err = reconciler.SetupWithManager(mgr); err != nil {
			l.Error(err, "unable to create controller")
			return
		}

		if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
			l.Error(err, "unable to set up health check")
			return
		}
		if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
			l.Error(err, "unable to set up ready check")
			return
		}

		l.Info("starting", "version", version)

		wg, ctx := errgroup.WithContext(cmd.Context())

		wg.Go(func() error {
			return mgr.Start(ctx)
		})

		wg.Go(func() error {
			// leadership is delegated entirely to the manager; flip the
			// gate and requeue everything once elected
			select {
			case <-mgr.Elected():
				isLeader.Store(true)
				reconciler.RequeueAllOnLeadershipChange()
			case <-ctx.Done():
			}
			return nil
		})

		wg.Go(func() error {
			return server.New(checker).SetLogger(l).Start(ctx, grpcHealthAddr)
		})

		if natsURL != "" {
			listener, err := trigger.NewListener(l, natsURL, reconciler.NotifyExternal)
			if err != nil {
				l.Error(err, "unable to connect trigger listener")
				return
			}
			wg.Go(func() error {
				return listener.Start(ctx)
			})
		}

		if err := wg.Wait(); err != nil {
			l.Error(err, "operator stopped")
		}
	},
}
