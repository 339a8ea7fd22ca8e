package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	userCmd.AddCommand(listUsersCmd)
	userCmd.AddCommand(getUserCmd)
	userCmd.AddCommand(deleteUserCmd)

	listUsersCmd.Flags().IntP("page", "p", 1, "page of results to fetch")

	getUserCmd.Flags().StringP("id", "i", "", "ID of the user to fetch")
	_ = getUserCmd.MarkFlagRequired("id")

	deleteUserCmd.Flags().StringP("id", "i", "", "ID of the user to be deleted")
	_ = deleteUserCmd.MarkFlagRequired("id")
}

var userCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users (superuser token required)",
}

// GetUsersCmd returns the users command
func GetUsersCmd() *cobra.Command {
	return userCmd
}

// listUsersCmd represents the command to list users
var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long:  `List users page by page.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		page, _ := cmd.Flags().GetInt("page")

		// Call the API Client
		response, err := apiClient.GetUsers(context.Background(), page)
		if err != nil {
			return fmt.Errorf("error fetching users: %w", err)
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

var getUserCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a user",
	Long:  "Get a user with a given ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetString("id")

		response, err := apiClient.GetUser(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Println(string(prettyJSON))
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user",
	Long:  "Delete a user with a given ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		userID, _ := cmd.Flags().GetString("id")

		err := apiClient.DeleteUser(context.Background(), userID)
		if err != nil {
			return fmt.Errorf("error while deleting user: %w", err)
		}
		fmt.Println("User deleted successfully")
		return nil
	},
}
