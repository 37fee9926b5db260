package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genspec "github.com/refyne/openapi2rust/internal/spec"
	"github.com/spf13/cobra"
)

var validateRunner = runValidate

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document without generating code",
		Long:  "Load an OpenAPI document from a URL or file and run full structural validation against the OpenAPI 3 rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				return newUsageError("validate: --input is required")
			}
			return validateRunner(cmd.Context(), input)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Path or URL to the OpenAPI document")

	return cmd
}

func runValidate(ctx context.Context, input string) error {
	t, _, err := genspec.Load(ctx, input)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	if err := t.Validate(ctx); err != nil {
		return newUsageError(fmt.Sprintf("validate: document is not a valid OpenAPI 3 spec: %v", err))
	}

	title := "unknown"
	if t.Info != nil && t.Info.Title != "" {
		title = t.Info.Title
	}
	fmt.Fprintf(os.Stdout, "OK: %s (OpenAPI %s)\n", title, t.OpenAPI)
	return nil
}
