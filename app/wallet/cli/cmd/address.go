package cmd

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/spf13/cobra"
)

var showPublicKey bool

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address for the specific wallet",
	RunE:  addressRun,
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.Flags().BoolVarP(&showPublicKey, "public-key", "k", false, "Also print the public key.")
}

func addressRun(cmd *cobra.Command, args []string) error {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), signature.Address(&privateKey.PublicKey))
	if showPublicKey {
		fmt.Fprintln(cmd.OutOrStdout(), signature.ExportPublicKey(&privateKey.PublicKey))
	}

	return nil
}
