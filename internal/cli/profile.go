package cli

import (
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "profile",
		Short:       "Show or update your profile",
		Annotations: routeOf(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, a)
		},
	}

	show := &cobra.Command{
		Use:         "show",
		Short:       "Show your profile",
		Annotations: routeOf(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, a)
		},
	}

	var update mallmodel.ProfileUpdate
	updateCmd := &cobra.Command{
		Use:         "update",
		Short:       "Update contact details or password",
		Annotations: routeOf(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if update == (mallmodel.ProfileUpdate{}) {
				return errUsage("nothing to update: pass --email, --phone or --password")
			}
			if err := a.Client.UpdateProfile(cmd.Context(), update); err != nil {
				return apiFailure("profile update failed", err)
			}
			a.Printer.Success("profile updated")
			return nil
		},
	}
	updateCmd.Flags().StringVar(&update.Email, "email", "", "new email address")
	updateCmd.Flags().StringVar(&update.Phone, "phone", "", "new phone number")
	updateCmd.Flags().StringVar(&update.Password, "password", "", "new password")

	cmd.AddCommand(show, updateCmd)
	return cmd
}

func showProfile(cmd *cobra.Command, a *App) error {
	p, err := a.Client.GetProfile(cmd.Context())
	if err != nil {
		return apiFailure("could not load profile", err)
	}

	a.Printer.Header(p.Username)
	table := a.Printer.NewTable("field", "value")
	table.AddRow("id", itoa(p.ID))
	table.AddRow("email", orDash(p.Email))
	table.AddRow("phone", orDash(p.Phone))
	if p.Info != "" {
		table.AddRow("info", p.Info)
	}
	return table.Render()
}
