package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slangclip/internal/domain"
)

func newModelsCommand(rt Runtime) *cobra.Command {
	var provider, apiKey string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models offered by a provider",
		Long: `List chat models for the stored (or given) provider.
Without a key, or when the provider cannot be reached, a built-in list is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := rt.services(nil)
			if err != nil {
				return err
			}
			defer services.Close()

			ctx := cmd.Context()
			settings, err := services.Controller.Settings(ctx)
			if err != nil {
				return err
			}
			if provider != "" {
				settings.Provider = domain.ParseProvider(provider)
			}
			key := firstNonEmpty(apiKey, os.Getenv("SLANGCLIP_API_KEY"), settings.APIKey)

			for _, model := range services.Adapter.ListModels(ctx, settings.Provider, key) {
				marker := " "
				if model == settings.Model {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, model)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "provider: openai or gemini (default: stored setting)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default: SLANGCLIP_API_KEY or stored setting)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
