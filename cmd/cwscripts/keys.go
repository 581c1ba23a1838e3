package main

import (
	"github.com/spf13/cobra"

	"github.com/baron-chain/cwscripts/app"
	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/wallet"
)

type keyOutput struct {
	Name     string `json:"name" yaml:"name"`
	Address  string `json:"address" yaml:"address"`
	Mnemonic string `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
}

func keysCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Inspect and create wallets",
	}
	cmd.AddCommand(keysListCmd(c), keysNewCmd())
	return cmd
}

func keysListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured wallets and their addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.load()
			if err != nil {
				return err
			}

			keys := make([]keyOutput, 0, len(a.Wallets.Names()))
			for _, name := range a.Wallets.Names() {
				w, err := a.Wallets.Resolve(name)
				if err != nil {
					return err
				}
				keys = append(keys, keyOutput{Name: name, Address: w.Address()})
			}
			return printObject(cmd, keys)
		},
	}
}

func keysNewCmd() *cobra.Command {
	var (
		prefix   string
		coinType uint32
	)
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Generate a mnemonic to add under wallets in the config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "new"
			if len(args) == 1 {
				name = args[0]
			}

			mnemonic, err := wallet.NewMnemonic()
			if err != nil {
				return err
			}
			reg, err := wallet.NewRegistry(app.MakeEncodingConfig().Marshaler,
				map[string]string{name: mnemonic},
				wallet.WithBech32Prefix(prefix),
				wallet.WithCoinType(coinType),
			)
			if err != nil {
				return err
			}
			w, err := reg.Resolve(name)
			if err != nil {
				return err
			}
			return printObject(cmd, keyOutput{Name: name, Address: w.Address(), Mnemonic: mnemonic})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", params.DefaultBech32Prefix, "bech32 prefix of the printed address")
	cmd.Flags().Uint32Var(&coinType, "coin-type", params.DefaultCoinType, "BIP-44 coin type")
	return cmd
}
