package cmd

import (
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	to     string
	amount string
	fee    string
	note   string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and submit a transaction",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the receiving wallet.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "0", "Amount to send.")
	sendCmd.Flags().StringVarP(&fee, "fee", "f", "0", "Fee offered to the miner.")
	sendCmd.Flags().StringVarP(&note, "note", "n", "", "Note attached to the transaction.")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) error {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	tip, err := decimal.NewFromString(fee)
	if err != nil {
		return err
	}

	tx := database.NewTx(signature.Address(&privateKey.PublicKey), database.ToAddress(to), value, tip, note)
	tx, err = tx.Sign(privateKey)
	if err != nil {
		return err
	}

	var resp map[string]any
	if err := call(http.MethodPost, "/v1/tx/submit", tx, &resp); err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), resp)
}
