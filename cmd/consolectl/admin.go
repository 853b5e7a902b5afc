package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	adminv1 "account-console/backend/api/admin/v1"
)

func newAdminCommand(d deps, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Realm administration (requires the admin role)",
	}
	executions := &cobra.Command{
		Use:   "executions",
		Short: "Inspect and change authentication flow executions",
	}
	executions.AddCommand(newExecutionsListCommand(d, flags), newExecutionUpdateCommand(d, flags))
	cmd.AddCommand(executions)
	return cmd
}

func newExecutionsListCommand(d deps, flags *globalFlags) *cobra.Command {
	var flow string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the executions of a flow",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&flow, "flow", "browser", "Flow alias")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
			resp, err := adminv1.NewAdminServiceClient(cc).ListExecutions(ctx, &adminv1.ListExecutionsRequest{Flow: flow})
			if err != nil {
				return err
			}
			return printExecutions(cmd.OutOrStdout(), flags, resp.Executions)
		})
	}
	return cmd
}

func newExecutionUpdateCommand(d deps, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "update EXECUTION_ID REQUIREMENT",
		Short:     "Set an execution's requirement (DISABLED, ALTERNATIVE, REQUIRED, CONDITIONAL)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"DISABLED", "ALTERNATIVE", "REQUIRED", "CONDITIONAL"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(d, flags, func(ctx context.Context, cc grpc.ClientConnInterface) error {
				resp, err := adminv1.NewAdminServiceClient(cc).UpdateExecution(ctx, &adminv1.UpdateExecutionRequest{
					ExecutionId: args[0], Requirement: args[1],
				})
				if err != nil {
					return err
				}
				return printExecutions(cmd.OutOrStdout(), flags, []*adminv1.Execution{resp.Execution})
			})
		},
	}
}

func printExecutions(w io.Writer, flags *globalFlags, execs []*adminv1.Execution) error {
	if ok, err := printJSON(w, flags, execs); ok {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROVIDER\tNAME\tREQUIREMENT")
	for _, e := range execs {
		if e == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Id, e.ProviderId, e.DisplayName, e.Requirement)
	}
	return tw.Flush()
}
