package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var apikeyDescription string

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue an API key for --tenant",
	Long: `Issue a bearer token for the tenant named by --tenant. Only a hash of the
token is stored, so it is printed exactly once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(true)
		if err != nil {
			return err
		}
		defer app.DB.Close()

		token, err := app.APIKeys.Create(commandContext(cmd), tenantID, apikeyDescription)
		if err != nil {
			return fmt.Errorf("creating api key: %w", err)
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]string{"tenant_id": tenantID, "token": token})
		}
		fmt.Fprintln(out, token)
		return nil
	},
}

func init() {
	apikeyCreateCmd.Flags().StringVar(&apikeyDescription, "description", "", "Free-form note stored with the key")
	apikeyCmd.AddCommand(apikeyCreateCmd)
	rootCmd.AddCommand(apikeyCmd)
}
