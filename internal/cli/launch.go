package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meowcraft/launcher/internal/identity"
	"github.com/meowcraft/launcher/internal/model"
	"github.com/meowcraft/launcher/internal/provision"
	"github.com/meowcraft/launcher/internal/web"
)

func newLaunchCmd() *cobra.Command {
	var name string
	var serveEvents bool

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Provision the instance and hand off to the launcher",
		Long: `launch runs the full pipeline: it checks the instance content,
downloads and extracts it if missing, materializes the account, and
starts the launcher process. With --name an offline account is used;
otherwise the currently active account from a previous login is reused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveAccountInput(name)
			if err != nil {
				return err
			}

			if cfg.Output != "json" {
				app.Orchestrator.AddObserver(progressPrinter())
			}

			if serveEvents {
				addr := app.Launcher.Events.Addr
				if addr == "" {
					addr = "127.0.0.1:7751"
				}
				server := web.NewServer(addr, web.NewRouter(web.RouterConfig{
					Logger: logger,
					Status: app.Orchestrator,
					Hub:    app.Hub,
				}), logger)
				server.Start()
				defer func() { _ = server.Shutdown(context.Background()) }()
			}

			directive, err := app.Orchestrator.EnsureReady(cmd.Context(), input)
			if err != nil {
				return err
			}

			if err := app.Spawner.Launch(directive); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(LaunchResult{
				Instance:    directive.InstanceName,
				DisplayName: directive.DisplayName,
				ID:          string(directive.IdentityID),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Offline display name (default: active account)")
	cmd.Flags().BoolVar(&serveEvents, "serve-events", false, "Serve progress events over HTTP while provisioning")

	return cmd
}

// resolveAccountInput picks the account for this run: an explicit
// offline name wins, otherwise the registry's active account is reused.
func resolveAccountInput(name string) (provision.AccountInput, error) {
	if name != "" {
		if err := model.ValidateDisplayName(name); err != nil {
			return provision.AccountInput{}, fmt.Errorf("%w: must be %d-%d characters",
				err, model.MinDisplayNameLength, model.MaxDisplayNameLength)
		}
		return provision.AccountInput{DisplayName: name}, nil
	}

	doc, err := app.ProfileStore.Load()
	if err != nil {
		return provision.AccountInput{}, err
	}

	active := doc.ActiveEntry()
	if active == nil {
		return provision.AccountInput{}, errors.New("no active account: run 'meowcraft login' or pass --name")
	}

	if active.Type == string(model.AccountFederated) {
		return provision.AccountInput{
			Federated: &identity.Identity{
				ID:          model.IdentityID(active.Profile.ID),
				DisplayName: active.Profile.Name,
				AccessToken: active.Ygg.Token,
			},
		}, nil
	}
	return provision.AccountInput{DisplayName: active.Profile.Name}, nil
}
