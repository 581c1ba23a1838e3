package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/baron-chain/cwscripts/rpc"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// printRaw writes a query answer to stdout as the node returned it.
func printRaw(cmd *cobra.Command, data json.RawMessage) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimSpace(data)))
	return err
}

// printObject writes v in the format chosen with --output.
func printObject(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString(flagOutput)

	var (
		out []byte
		err error
	)
	switch format {
	case outputYAML:
		out, err = yaml.Marshal(v)
	case outputJSON, "":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	default:
		return exitError{fmt.Errorf("unknown output format %q", format), exitCodeConfig}
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// printResult prints res, first waiting for it to be committed when --wait
// is set.
func (c *cli) printResult(cmd *cobra.Command, res *rpc.TransactionResult) error {
	wait, _ := cmd.Flags().GetBool(flagWait)
	if wait && res.Success && res.TxHash != "" {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		timeout, _ := cmd.Flags().GetDuration(flagTimeout)
		committed, err := c.app.Client.AwaitTx(ctx, res.TxHash, pollInterval(timeout))
		if err != nil {
			return err
		}
		res = committed
	}
	return printObject(cmd, res)
}
