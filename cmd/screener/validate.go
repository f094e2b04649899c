package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/schemas"
	embedded "github.com/jonathan/resume-screener/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against an embedded schema",
	Long:  "Validates a config file or a JSON score report against one of the schemas compiled into the binary.",
	RunE:  runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

// schemaAliases maps the --schema values to embedded schema names.
var schemaAliases = map[string]string{
	"config":       embedded.Config,
	"score_report": embedded.ScoreReport,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema to validate against: config or score_report (required)")
	validateCmd.Flags().StringVarP(&validateJSON, "json", "j", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	name, ok := schemaAliases[validateSchema]
	if !ok {
		name = validateSchema
	}
	if !slices.Contains(embedded.Names(), name) {
		return fmt.Errorf("unknown schema %q (available: config, score_report)", validateSchema)
	}

	out := cmd.OutOrStdout()
	if err := schemas.ValidateFile(name, validateJSON); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(out, "Validation failed: %v\n", err)
			return fmt.Errorf("%s does not match %s", validateJSON, name)
		}
		return err
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s matches %s\n", validateJSON, name)
	return nil
}
