package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	accountv1 "account-console/backend/api/account/v1"
)

func newSigningInCommand(d deps, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signing-in",
		Aliases: []string{"si"},
		Short:   "Manage your own signing-in credentials",
	}
	cmd.AddCommand(
		newListCommand(d, flags),
		newMoveCommand(d, flags),
		newSetupCommand(d, flags),
		newCompleteOTPCommand(d, flags),
		newConfirmCodesCommand(d, flags),
		newPasswordCommand(d, flags),
		newRemoveCommand(d, flags),
	)
	return cmd
}

func newListCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the signing-in panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				resp, err := accountv1.NewAccountServiceClient(cc).GetSigningIn(ctx, &accountv1.GetSigningInRequest{})
				if err != nil {
					return err
				}
				return printRows(cmd.OutOrStdout(), flags, resp.Rows)
			})
		},
	}
}

func newMoveCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "move TYPE up|down",
		Short:     "Move a credential type one position up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir accountv1.Direction
			switch strings.ToLower(args[1]) {
			case "up":
				dir = accountv1.Direction_UP
			case "down":
				dir = accountv1.Direction_DOWN
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				resp, err := accountv1.NewAccountServiceClient(cc).MoveCredential(ctx, &accountv1.MoveCredentialRequest{Type: args[0], Direction: dir})
				if err != nil {
					return err
				}
				return printRows(cmd.OutOrStdout(), flags, resp.Rows)
			})
		},
	}
}

func newSetupCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup TYPE",
		Short: "Start setting up a credential type (otp, recovery-authn-codes, password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				resp, err := accountv1.NewAccountServiceClient(cc).StartCredentialSetup(ctx, &accountv1.StartCredentialSetupRequest{Type: args[0]})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if ok, err := printJSON(w, flags, resp); ok {
					return err
				}
				fmt.Fprintf(w, "%s (%s)\n", resp.PageTitle, resp.RequiredAction)
				if resp.SetupId != "" {
					fmt.Fprintf(w, "setup id: %s\n", resp.SetupId)
				}
				if resp.Secret != "" {
					fmt.Fprintf(w, "secret:   %s\nurl:      %s\n", resp.Secret, resp.OtpauthUrl)
				}
				for _, c := range resp.RecoveryCodes {
					fmt.Fprintln(w, c)
				}
				if resp.ExpiresAt != nil {
					fmt.Fprintf(w, "expires:  %s\n", resp.ExpiresAt.AsTime().Format("2006-01-02 15:04:05Z07:00"))
				}
				return nil
			})
		},
	}
}

func newCompleteOTPCommand(d deps, flags *globalFlags) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "complete-otp SETUP_ID CODE",
		Short: "Finish an authenticator app setup with a code from the app",
		Args:  cobra.ExactArgs(2),
	}
	cmd.Flags().StringVar(&label, "label", "", "Device name shown in the panel")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
			resp, err := accountv1.NewAccountServiceClient(cc).CompleteOtpSetup(ctx, &accountv1.CompleteOtpSetupRequest{
				SetupId: args[0], Code: args[1], Label: label,
			})
			if err != nil {
				return err
			}
			return printCredential(cmd.OutOrStdout(), flags, resp.Credential)
		})
	}
	return cmd
}

func newConfirmCodesCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm-codes SETUP_ID",
		Short: "Confirm that the recovery codes were saved and store them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				resp, err := accountv1.NewAccountServiceClient(cc).CompleteRecoveryCodesSetup(ctx, &accountv1.CompleteRecoveryCodesSetupRequest{
					SetupId: args[0], Confirmed: true,
				})
				if err != nil {
					return err
				}
				return printCredential(cmd.OutOrStdout(), flags, resp.Credential)
			})
		},
	}
}

func newPasswordCommand(d deps, flags *globalFlags) *cobra.Command {
	var password, confirmation string
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Set or update your password",
		Args:  cobra.NoArgs,
	}
	f := cmd.Flags()
	f.StringVar(&password, "new", "", "New password")
	f.StringVar(&confirmation, "confirm", "", "New password again")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("confirm")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
			if _, err := accountv1.NewAccountServiceClient(cc).UpdatePassword(ctx, &accountv1.UpdatePasswordRequest{
				NewPassword: password, Confirmation: confirmation,
			}); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "password updated")
			return err
		})
	}
	return cmd
}

func newRemoveCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CREDENTIAL_ID",
		Short: "Remove one of your credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				if _, err := accountv1.NewAccountServiceClient(cc).RemoveCredential(ctx, &accountv1.RemoveCredentialRequest{CredentialId: args[0]}); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return err
			})
		},
	}
}

func printRows(w io.Writer, flags *globalFlags, rows []*accountv1.CredentialRow) error {
	if ok, err := printJSON(w, flags, rows); ok {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTITLE\tSTATE\tACTIONS")
	for _, r := range rows {
		state := r.NotSetUpText
		if r.Configured {
			labels := make([]string, 0, len(r.Items))
			for _, it := range r.Items {
				labels = append(labels, fmt.Sprintf("%s [%s]", it.Label, it.CredentialId))
			}
			state = strings.Join(labels, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Type, r.Title, state, strings.Join(rowActions(r), " "))
	}
	return tw.Flush()
}

func rowActions(r *accountv1.CredentialRow) []string {
	var out []string
	if r.Up != nil && r.Up.Enabled {
		out = append(out, "up")
	}
	if r.Down != nil && r.Down.Enabled {
		out = append(out, "down")
	}
	if r.CreateAction != nil {
		out = append(out, "setup")
	}
	if r.UpdateAction != nil {
		out = append(out, "update")
	}
	if r.Removable {
		out = append(out, "remove")
	}
	return out
}

func printCredential(w io.Writer, flags *globalFlags, c *accountv1.Credential) error {
	if ok, err := printJSON(w, flags, c); ok {
		return err
	}
	if c == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "created %s %q (%s)\n", c.Type, c.Label, c.Id)
	return err
}
