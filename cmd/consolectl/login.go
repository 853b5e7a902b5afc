package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	authv1 "account-console/backend/api/auth/v1"
)

func newLoginCommand(d deps, flags *globalFlags) *cobra.Command {
	var realm, username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a realm username and password and print the access token",
		Args:  cobra.NoArgs,
	}
	f := cmd.Flags()
	f.StringVar(&realm, "realm", "", "Realm name")
	f.StringVar(&username, "username", "", "Username")
	f.StringVar(&password, "password", d.getenv("CONSOLE_PASSWORD"), "Password (default $CONSOLE_PASSWORD)")
	_ = cmd.MarkFlagRequired("realm")
	_ = cmd.MarkFlagRequired("username")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
			resp, err := authv1.NewAuthServiceClient(cc).Login(ctx, &authv1.LoginRequest{
				Realm:    realm,
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd.OutOrStdout(), flags, resp); ok {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.AccessToken)
			return err
		})
	}
	return cmd
}
