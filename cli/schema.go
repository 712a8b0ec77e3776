package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/swaggest/jsonschema-go"

	"github.com/minio-ops/minio-operator/internal/relation"
)

// schemaCmd prints the object-storage interface contract: the payload schema
// consumers should validate against, plus the protocol versions this
// provider speaks.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "print the object-storage interface schema",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := jsonschema.Reflector{}
		schema, err := reflector.Reflect(relation.Payload{})
		if err != nil {
			return fmt.Errorf("reflect payload schema: %w", err)
		}

		out, err := json.MarshalIndent(map[string]any{
			"versions": relation.SupportedVersions,
			"schema":   schema,
		}, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
