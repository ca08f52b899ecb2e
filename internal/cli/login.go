package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meowcraft/launcher/internal/model"
)

func newLoginCmd() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Materialize an account into the launcher registry",
	}

	loginCmd.AddCommand(newLoginOfflineCmd())
	loginCmd.AddCommand(newLoginMicrosoftCmd())

	return loginCmd
}

func newLoginOfflineCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Log in with a locally-derived offline account",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validated before anything is orchestrated
			if err := model.ValidateDisplayName(name); err != nil {
				return fmt.Errorf("%w: must be %d-%d characters",
					err, model.MinDisplayNameLength, model.MaxDisplayNameLength)
			}

			record, err := app.Materializer.MaterializeOffline(cmd.Context(), name)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(LoginResult{
				Kind:        string(record.Kind),
				ID:          string(record.IdentityID),
				DisplayName: record.DisplayName,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLoginMicrosoftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "microsoft",
		Short: "Log in with a Microsoft account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := app.IdentityProvider.Login(cmd.Context())
			if err != nil {
				return err
			}

			record, err := app.Materializer.MaterializeFederated(cmd.Context(), ident)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(LoginResult{
				Kind:        string(record.Kind),
				ID:          string(record.IdentityID),
				DisplayName: record.DisplayName,
			})
			return nil
		},
	}
}
