package cmd

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := call(http.MethodGet, "/v1/status", nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <index|hash>",
	Short: "Find a block by its index or hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp map[string]any
		if err := call(http.MethodGet, "/v1/blocks/search/"+url.PathEscape(args[0]), nil, &resp); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(searchCmd)
}
