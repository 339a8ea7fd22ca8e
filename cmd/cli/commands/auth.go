package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kentemie/Fast-and-Furious/pkg/api/v1/handlers"
)

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringP("email", "e", "", "account email")
	loginCmd.Flags().StringP("password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringP("email", "e", "", "account email")
	registerCmd.Flags().StringP("password", "p", "", "account password")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate against the API",
}

// GetAuthCmd returns the auth command
func GetAuthCmd() *cobra.Command {
	return authCmd
}

// loginCmd exchanges credentials for a bearer token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	Long:  `Exchange credentials for a bearer token. Pass the token to other commands via --token or FNF_TOKEN.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		response, err := apiClient.Login(context.Background(), handlers.LoginParams{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("error logging in: %w", err)
		}

		// Pretty print the response
		prettyJSON, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		response, err := apiClient.Register(context.Background(), handlers.RegisterParams{
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
		})
		if err != nil {
			return fmt.Errorf("error registering account: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

// whoamiCmd shows the account behind the configured token
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated account",
	RunE: func(_ *cobra.Command, _ []string) error {
		response, err := apiClient.GetCurrentUser(context.Background())
		if err != nil {
			return fmt.Errorf("error fetching current user: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}
