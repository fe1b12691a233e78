package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"skillaudit/pkg/pipeline"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the audit report contract",
	Long: `Emit a JSON schema describing the report records produced by the audit
pipeline, for consumers wiring skillaudit into CI gates or aggregators.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		reflector := jsonschema.Reflector{DoNotReference: false}
		schema := reflector.Reflect(&pipeline.Report{})

		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
