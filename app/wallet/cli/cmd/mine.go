package cmd

import (
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/spf13/cobra"
)

var difficulty int

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the pending transactions with this wallet's key",
	RunE:  mineRun,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the running mining operation",
	RunE:  cancelRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(cancelCmd)
	mineCmd.Flags().IntVarP(&difficulty, "difficulty", "d", 0, "Set the difficulty before mining.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return err
	}

	if difficulty != 0 {
		req := struct {
			Difficulty int `json:"difficulty"`
		}{
			Difficulty: difficulty,
		}
		if err := call(http.MethodPost, "/v1/mining/difficulty", req, nil); err != nil {
			return err
		}
	}

	req := struct {
		PrivateKey string `json:"private_key"`
	}{
		PrivateKey: signature.ExportPrivateKey(privateKey),
	}

	var resp map[string]any
	if err := call(http.MethodPost, "/v1/mining/start", req, &resp); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), resp)
}

func cancelRun(cmd *cobra.Command, args []string) error {
	var resp map[string]any
	if err := call(http.MethodPost, "/v1/mining/cancel", nil, &resp); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), resp)
}
