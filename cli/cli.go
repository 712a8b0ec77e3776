package cli

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	runCmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "path to kubeconfig, in-cluster config is used when empty")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-bind-address", ":8080", "metrics endpoint address")
	runCmd.Flags().StringVar(&probeAddr, "health-probe-bind-address", ":8081", "probe endpoint address")
	runCmd.Flags().StringVar(&grpcHealthAddr, "grpc-health-address", ":50189", "gRPC health service address")
	runCmd.Flags().BoolVar(&enableLeaderElection, "leader-elect", true, "enable leader election, only the elected replica mutates shared state")
	runCmd.Flags().StringVarP(&image, "image", "m", "minio/minio:latest", "workload container image")
	runCmd.Flags().StringVar(&natsURL, "nats", "", "NATS server URL for external reconcile triggers, disabled when empty")
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "directory containing the operator defaults file")
	runCmd.Flags().StringVar(&stateNamespace, "state-namespace", "minio-operator", "namespace for the operator's durable state")
	root.AddCommand(runCmd)

	root.AddCommand(schemaCmd)
}
