package cmd

import (
	"net/http"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/spf13/cobra"
)

var displayName string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the wallet's public key with the node",
	RunE:  registerRun,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name for the wallet. Defaults to the account name.")
}

func registerRun(cmd *cobra.Command, args []string) error {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return err
	}

	name := displayName
	if name == "" {
		name = strings.TrimSuffix(accountName, keyExtension)
	}

	req := struct {
		PublicKey   string `json:"public_key"`
		DisplayName string `json:"display_name"`
	}{
		PublicKey:   signature.ExportPublicKey(&privateKey.PublicKey),
		DisplayName: name,
	}

	var resp map[string]any
	if err := call(http.MethodPost, "/v1/wallets/register", req, &resp); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), resp)
}
