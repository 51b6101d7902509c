package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     Config
)

var rootCmd = &cobra.Command{
	Use:   "addrlist",
	Short: "Manage NeoFS Address List contract",
	Long: `Read and modify the list of addresses kept by the NeoFS Address List contract.

Connection options are taken from flags, ADDRLIST_* environment variables
(e.g. ADDRLIST_RPC_ENDPOINT, ADDRLIST_WALLET_PASSWORD) and the config file
in that priority order. State-changing commands must be signed by the
committee account.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = readConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		return cfg.validate()
	},
}

func init() {
	fs := rootCmd.PersistentFlags()

	fs.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./addrlist.yaml)")
	fs.StringP("rpc", "r", "", "Neo RPC endpoint")
	fs.String("contract", "", "contract script hash (LE hex) or Neo address")
	fs.StringP("wallet", "w", "", "path to NEP-6 wallet with committee account")
	fs.StringP("address", "a", "", "wallet account address (default: wallet's default account)")
	fs.Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag("rpc.endpoint", fs.Lookup("rpc"))
	_ = viper.BindPFlag("contract", fs.Lookup("contract"))
	_ = viper.BindPFlag("wallet.path", fs.Lookup("wallet"))
	_ = viper.BindPFlag("wallet.address", fs.Lookup("address"))
	_ = viper.BindPFlag("debug", fs.Lookup("debug"))
}
