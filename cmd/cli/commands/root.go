// Package commands implements the CLI subcommands
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/client"
	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagToken         = "token"
)

// environment variable names
const (
	envServerAddress = "FNF_SERVER_ADDRESS"
	envToken         = "FNF_TOKEN"
)

var (
	// apiClient is the shared API client instance
	apiClient *client.APIClient
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// authToken holds the bearer token used for authenticated endpoints.
	authToken string
)

// initClient initializes the API client
func initClient() error {
	var err error
	// Use the serverAddress determined by PersistentPreRunE
	opts := client.DefaultOptions() // Start with defaults
	opts.BaseURL = serverAddress    // Override BaseURL

	apiClient, err = client.NewClient(opts)
	if err != nil {
		return err
	}
	apiClient.AuthToken = authToken
	return nil
}

func init() {
	// Set basic defaults for the flags. PersistentPreRunE handles env var overrides.
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		"Address of the API server (env: FNF_SERVER_ADDRESS)")
	RootCmd.PersistentFlags().StringVarP(&authToken, flagToken, "t", "",
		"Bearer token for authenticated endpoints (env: FNF_TOKEN)")

	RootCmd.AddCommand(GetAuthCmd())
	RootCmd.AddCommand(GetUsersCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fnf",
	Short: "FNF CLI - A command line interface for the user service API",
	Long:  `FNF CLI is a command line tool for managing accounts through the user service API.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Check if the server address flag was explicitly set by the user.
		if !cmd.Flags().Changed(flagServerAddress) {
			envAddr := os.Getenv(envServerAddress)
			if envAddr != "" {
				serverAddress = envAddr // Override the default value with the env var
			}
		}
		if !cmd.Flags().Changed(flagToken) {
			envTok := os.Getenv(envToken)
			if envTok != "" {
				authToken = envTok
			}
		}

		// Validate the final server address
		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		// Initialization now happens here, using the correct serverAddress
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
