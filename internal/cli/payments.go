package cli

import (
	"context"
	"fmt"

	"github.com/flexprice/iamport-go/iamport"
	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type lookupFlags struct {
	merchantUID string
	impUID      string
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.merchantUID, "merchant-uid", "", "Merchant assigned payment id")
	cmd.Flags().StringVar(&f.impUID, "imp-uid", "", "Gateway assigned payment id")
}

func (f *lookupFlags) params() iamport.Params {
	p := iamport.Params{}
	if f.merchantUID != "" {
		p[iamport.FieldMerchantUID] = f.merchantUID
	}
	if f.impUID != "" {
		p[iamport.FieldImpUID] = f.impUID
	}
	return p
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHintf("Amount %q is not a number", s).
			Mark(ierr.ErrValidation)
	}
	return amount, nil
}

func newFindCmd(opts *globalOptions) *cobra.Command {
	var lookup lookupFlags
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Show a payment by merchant uid or imp uid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				payment, err := c.FindWithParams(ctx, lookup.params())
				if err != nil {
					return err
				}
				return printJSON(cmd, payment)
			})
		},
	}
	lookup.register(cmd)
	return cmd
}

func newIsPaidCmd(opts *globalOptions) *cobra.Command {
	var lookup lookupFlags
	cmd := &cobra.Command{
		Use:   "is-paid <amount>",
		Short: "Check that a payment was paid for exactly amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				key, err := iamport.LookupFromParams(lookup.params())
				if err != nil {
					return err
				}
				paid, err := c.IsPaid(ctx, amount, key)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), paid)
				return nil
			})
		},
	}
	lookup.register(cmd)
	return cmd
}

func newCancelCmd(opts *globalOptions) *cobra.Command {
	var (
		lookup lookupFlags
		reason string
		amount string
	)
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a payment in full or in part",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := lookup.params()
			if cmd.Flags().Changed("reason") {
				params[iamport.FieldReason] = reason
			}
			if amount != "" {
				partial, err := parseAmount(amount)
				if err != nil {
					return err
				}
				params[iamport.FieldAmount] = partial
			}
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				payment, err := c.CancelWithParams(ctx, params)
				if err != nil {
					return err
				}
				return printJSON(cmd, payment)
			})
		},
	}
	lookup.register(cmd)
	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")
	cmd.Flags().StringVar(&amount, "amount", "", "Partial amount to cancel")
	return cmd
}

func newPrepareCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare <merchant-uid> <amount>",
		Short: "Register the amount a payment must be made for",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				prepared, err := c.Prepare(ctx, args[0], amount)
				if err != nil {
					return err
				}
				return printJSON(cmd, prepared)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <merchant-uid> <amount>",
		Short: "Check the amount registered for a merchant uid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), func(ctx context.Context, c *iamport.Client) error {
				ok, err := c.PrepareValidate(ctx, args[0], amount)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			})
		},
	})
	return cmd
}
