package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// deps are the process-level collaborators of every command; tests swap dial for an in-memory connection.
type deps struct {
	getenv func(key string) string
	dial   func(addr string) (grpc.ClientConnInterface, io.Closer, error)
}

func realDeps() deps {
	return deps{
		getenv: os.Getenv,
		dial: func(addr string) (grpc.ClientConnInterface, io.Closer, error) {
			conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return nil, nil, err
			}
			return conn, conn, nil
		},
	}
}

type globalFlags struct {
	addr    string
	token   string
	output  string
	timeout time.Duration
}

func newRootCommand(d deps) *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:          "consolectl",
		Short:        "Account console client",
		Long:         "consolectl manages signing-in credentials and realm authentication flows through the account console API.",
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.addr, "addr", envOr(d.getenv, "CONSOLE_ADDR", "localhost:8080"), "Console gRPC address")
	pf.StringVar(&flags.token, "token", d.getenv("CONSOLE_TOKEN"), "Bearer access token (see 'consolectl login')")
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: text or json")
	pf.DurationVar(&flags.timeout, "timeout", 10*time.Second, "Request timeout")

	cmd.AddCommand(
		newLoginCommand(d, flags),
		newSigningInCommand(d, flags),
		newAdminCommand(d, flags),
	)
	return cmd
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

// call dials the console, attaches the bearer token and runs fn with a bounded context.
func call(d deps, flags *globalFlags, fn func(ctx context.Context, cc grpc.ClientConnInterface) error) error {
	cc, closer, err := d.dial(flags.addr)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", flags.addr, err)
	}
	defer closer.Close()

	ctx := context.Background()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}
	if flags.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+flags.token)
	}
	return fn(ctx, cc)
}

// printJSON writes v indented when --output json is set and reports whether it did.
func printJSON(w io.Writer, flags *globalFlags, v any) (bool, error) {
	if flags.output != "json" {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
