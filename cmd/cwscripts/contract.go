package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/baron-chain/cwscripts/msgs"
	"github.com/baron-chain/cwscripts/scripts"
)

const flagFunds = "funds"

func queryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "query <contract> <json>",
		Aliases: []string{"q"},
		Short:   "Run a smart query against a registered contract or an address",
		Example: `cwscripts query oracle '{"query_price":{}}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			data, err := a.Scripts.Query(ctx, args[0], json.RawMessage(args[1]))
			if err != nil {
				return err
			}
			return printRaw(cmd, data)
		},
	}
}

func executeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "execute <contract> <action> [json]",
		Aliases: []string{"exec", "x"},
		Short:   "Send {action: json} to a contract",
		Example: `cwscripts execute counter reset '{"count":0}' --from validator`,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			var payload json.RawMessage
			if len(args) == 3 {
				payload = json.RawMessage(args[2])
			}
			res, err := a.Scripts.Execute(ctx, args[0], args[1], payload, opts...)
			if err != nil {
				return err
			}
			return c.printResult(cmd, res)
		},
	}
	cmd.Flags().String(flagFunds, "", "coins to send with the message, e.g. 1000000uluna")
	return cmd
}

// callOptions reads --from and, when the command has it, --funds.
func callOptions(cmd *cobra.Command) ([]scripts.CallOption, error) {
	var opts []scripts.CallOption
	if from, _ := cmd.Flags().GetString(flagFrom); from != "" {
		opts = append(opts, scripts.WithSigner(from))
	}
	if f := cmd.Flags().Lookup(flagFunds); f != nil && f.Changed {
		funds, err := msgs.ParseFunds(f.Value.String())
		if err != nil {
			return nil, err
		}
		opts = append(opts, scripts.WithFunds(funds...))
	}
	return opts, nil
}
