package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func historyCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [txhash]",
		Short: "Show recorded transactions, newest first (needs journal_dir)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load()
			if err != nil {
				return err
			}
			if a.Journal == nil {
				return exitError{errors.New("journal_dir is not configured"), exitCodeConfig}
			}

			if len(args) == 1 {
				receipt, err := a.Journal.Get(args[0])
				if err != nil {
					return err
				}
				return printObject(cmd, receipt)
			}

			receipts, err := a.Journal.List(limit)
			if err != nil {
				return err
			}
			return printObject(cmd, receipts)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of receipts, 0 for all")
	return cmd
}
