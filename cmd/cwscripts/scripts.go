package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/baron-chain/cwscripts/app"
	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/msgs"
	"github.com/baron-chain/cwscripts/rpc"
	"github.com/baron-chain/cwscripts/scripts"
)

type (
	queryFunc func(ctx context.Context, a *app.App, args []string) (json.RawMessage, error)
	txFunc    func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error)
)

func scriptQueryCmd(c *cli, cmd *cobra.Command, run queryFunc) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := c.load()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		data, err := run(ctx, a, args)
		if err != nil {
			return err
		}
		return printRaw(cmd, data)
	}
	return cmd
}

func scriptTxCmd(c *cli, cmd *cobra.Command, run txFunc) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := callOptions(cmd)
		if err != nil {
			return err
		}
		a, err := c.load()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := run(ctx, a, args, opts)
		if err != nil {
			return err
		}
		return c.printResult(cmd, res)
	}
	return cmd
}

func getCountCmd(c *cli) *cobra.Command {
	return scriptQueryCmd(c, &cobra.Command{
		Use:   "get-count",
		Short: "Query the counter",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, a *app.App, _ []string) (json.RawMessage, error) {
		return a.Scripts.GetCount(ctx)
	})
}

func incrementCmd(c *cli) *cobra.Command {
	return scriptTxCmd(c, &cobra.Command{
		Use:   "increment",
		Short: "Increment the counter, signed by validator unless --from is given",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, a *app.App, _ []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		return a.Scripts.Increment(ctx, opts...)
	})
}

func resetCmd(c *cli) *cobra.Command {
	return scriptTxCmd(c, &cobra.Command{
		Use:   "reset [count]",
		Short: "Reset the counter to count (default 0)",
		Args:  cobra.MaximumNArgs(1),
	}, func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		var count int32
		if len(args) == 1 {
			n, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("count %q: %w", args[0], err)
			}
			count = int32(n)
		}
		return a.Scripts.Reset(ctx, count, opts...)
	})
}

func mintCmd(c *cli) *cobra.Command {
	var amount string
	cmd := scriptTxCmd(c, &cobra.Command{
		Use:   "mint [recipient]",
		Short: "Mint cw20 tokens to a wallet, contract or address (default the swap contract)",
		Args:  cobra.MaximumNArgs(1),
	}, func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		var recipient string
		if len(args) == 1 {
			recipient = args[0]
		}
		n, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		return a.Scripts.Mint(ctx, recipient, n, opts...)
	})
	cmd.Flags().StringVar(&amount, "amount", strconv.Itoa(scripts.DefaultMintAmount), "amount to mint")
	return cmd
}

func transferCmd(c *cli) *cobra.Command {
	return scriptTxCmd(c, &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Transfer cw20 tokens from the signer, homework unless --from is given",
		Args:  cobra.ExactArgs(2),
	}, func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		amount, err := parseAmount(args[1])
		if err != nil {
			return nil, err
		}
		return a.Scripts.Transfer(ctx, args[0], amount, opts...)
	})
}

func balanceCmd(c *cli) *cobra.Command {
	return scriptQueryCmd(c, &cobra.Command{
		Use:   "balance [address]",
		Short: "Query the cw20 balance of a wallet, contract or address (default the swap contract)",
		Args:  cobra.MaximumNArgs(1),
	}, func(ctx context.Context, a *app.App, args []string) (json.RawMessage, error) {
		var address string
		if len(args) == 1 {
			address = args[0]
		}
		return a.Scripts.Balance(ctx, address)
	})
}

func tokenInfoCmd(c *cli) *cobra.Command {
	return scriptQueryCmd(c, &cobra.Command{
		Use:   "token-info",
		Short: "Query the cw20 token info",
		Args:  cobra.NoArgs,
	}, func(ctx context.Context, a *app.App, _ []string) (json.RawMessage, error) {
		return a.Scripts.TokenInfo(ctx)
	})
}

func swapCmd(c *cli) *cobra.Command {
	cmd := scriptTxCmd(c, &cobra.Command{
		Use:     "swap",
		Aliases: []string{"buy"},
		Short:   "Buy tokens from the swap contract",
		Args:    cobra.NoArgs,
	}, func(ctx context.Context, a *app.App, _ []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		return a.Scripts.Swap(ctx, opts...)
	})
	cmd.Flags().String(flagFunds,
		fmt.Sprintf("%d%s", scripts.DefaultSwapAmount, params.DefaultDenom),
		"coins to pay with",
	)
	return cmd
}

func withdrawCmd(c *cli) *cobra.Command {
	return scriptTxCmd(c, &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw from the swap contract",
		Args:  cobra.ExactArgs(1),
	}, func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		n, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return nil, msgs.ErrInvalidAmount.Wrapf("%q: %s", args[0], err)
		}
		return a.Scripts.Withdraw(ctx, int32(n), opts...)
	})
}

func getPriceCmd(c *cli) *cobra.Command {
	return scriptQueryCmd(c, &cobra.Command{
		Use:     "get-price",
		Aliases: []string{"read-price"},
		Short:   "Query the oracle price",
		Args:    cobra.NoArgs,
	}, func(ctx context.Context, a *app.App, _ []string) (json.RawMessage, error) {
		return a.Scripts.GetPrice(ctx)
	})
}

func updatePriceCmd(c *cli) *cobra.Command {
	return scriptTxCmd(c, &cobra.Command{
		Use:     "update-price [price]",
		Aliases: []string{"set-price"},
		Short:   fmt.Sprintf("Set the oracle price (default %d)", scripts.DefaultPrice),
		Args:    cobra.MaximumNArgs(1),
	}, func(ctx context.Context, a *app.App, args []string, opts []scripts.CallOption) (*rpc.TransactionResult, error) {
		price := uint64(scripts.DefaultPrice)
		if len(args) == 1 {
			p, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("price %q: %w", args[0], err)
			}
			price = p
		}
		return a.Scripts.UpdatePrice(ctx, price, opts...)
	})
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, msgs.ErrInvalidAmount.Wrapf("%q is not an integer", s)
	}
	return amount, nil
}
