package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slangclip/internal/domain"
	"slangclip/internal/settings"
)

func newSettingsCommand(rt Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := rt.services(nil)
			if err != nil {
				return err
			}
			defer services.Close()

			s, err := services.Controller.Settings(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", settings.KeyAPIKey, maskKey(s.APIKey))
			fmt.Fprintf(w, "%s\t%s\n", settings.KeyProvider, s.Provider)
			fmt.Fprintf(w, "%s\t%s\n", settings.KeyModel, s.Model)
			fmt.Fprintf(w, "%s\t%s\n", settings.KeyTone, s.Tone)
			fmt.Fprintf(w, "%s\t%t\n", settings.KeyAutoPaste, s.AutoPaste)
			fmt.Fprintf(w, "%s\t%d entries\n", settings.KeyHistory, len(s.History))
			fmt.Fprintf(w, "storage\t%s\n", services.Config.Storage.Path)
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. Keys: api_key, provider, model, tone, auto_paste.
Use "slangclip-cli history clear" to reset history.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := rt.services(nil)
			if err != nil {
				return err
			}
			defer services.Close()

			ctx := cmd.Context()
			s, err := services.Controller.Settings(ctx)
			if err != nil {
				return err
			}
			if err := applySetting(&s, args[0], args[1]); err != nil {
				return err
			}
			if _, err := services.Controller.SaveSettings(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
			return nil
		},
	})
	return cmd
}

var errReadOnlyKey = errors.New("history can only be cleared")

func applySetting(s *domain.Settings, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case settings.KeyAPIKey:
		s.APIKey = value
	case settings.KeyProvider:
		provider := domain.Provider(strings.ToLower(value))
		if !provider.Valid() {
			return fmt.Errorf("unknown provider %q (want openai or gemini)", value)
		}
		s.Provider = provider
		s.Model = ""
	case settings.KeyModel:
		s.Model = value
	case settings.KeyTone:
		tone := domain.ParseTone(value)
		if string(tone) != strings.ToLower(value) {
			return fmt.Errorf("unknown tone %q (want casual, neutral or formal)", value)
		}
		s.Tone = tone
	case settings.KeyAutoPaste:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_paste must be true or false: %w", err)
		}
		s.AutoPaste = b
	case settings.KeyHistory:
		return errReadOnlyKey
	default:
		return fmt.Errorf("%w: %s", settings.ErrUnknownKey, key)
	}
	return nil
}
