package cli

import (
	"context"

	"github.com/flexprice/iamport-go/iamport"
	"github.com/spf13/cobra"
)

func newCustomerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage billing profiles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <customer-uid>",
			Short: "Show a billing profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
					customer, err := c.CustomerGet(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, customer)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <customer-uid>",
			Short: "Delete a billing profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
					customer, err := c.CustomerDelete(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, customer)
				})
			},
		},
	)
	return cmd
}

func newUnscheduleCmd(opts *globalOptions) *cobra.Command {
	var merchantUIDs []string
	cmd := &cobra.Command{
		Use:   "unschedule <customer-uid>",
		Short: "Revoke scheduled charges of a billing profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := iamport.Params{iamport.FieldCustomerUID: args[0]}
			if len(merchantUIDs) > 0 {
				params[iamport.FieldMerchantUID] = merchantUIDs
			}
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				schedules, err := c.PayUnschedule(ctx, params)
				if err != nil {
					return err
				}
				return printJSON(cmd, schedules)
			})
		},
	}
	cmd.Flags().StringSliceVar(&merchantUIDs, "merchant-uid", nil, "Only revoke these scheduled charges")
	return cmd
}
