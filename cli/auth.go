package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"syscall"

	"github.com/bookworm-labs/alexandria/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var username string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Login and logout for the librarian account.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as the librarian",
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" {
			return fmt.Errorf("username is required (--username)")
		}

		fmt.Print("Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: alexandria init")
			return err
		}

		reqBody := map[string]string{
			"username": username,
			"password": string(passwordBytes),
		}
		jsonData, _ := json.Marshal(reqBody)

		res, err := http.Post(serverURL+"/auth/login", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			printError("Login failed: Server connection error")
			fmt.Println("Check server status: alexandria system info")
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)

		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Login failed: %s", decodeError(body)))
			return fmt.Errorf("login failed")
		}

		var authRes struct {
			Token    string `json:"token"`
			Username string `json:"username"`
		}
		json.Unmarshal(body, &authRes)

		if err := config.UpdateUserToken(authRes.Username, authRes.Token); err != nil {
			fmt.Println("Warning: Failed to save token to config")
		}

		printSuccess(fmt.Sprintf("Logged in as %s", authRes.Username))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		res, err := doAuthorized(http.MethodPost, serverURL+"/auth/logout", nil)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if err := config.UpdateUserToken("", ""); err != nil {
			fmt.Println("Warning: Failed to clear token from config")
		}

		printSuccess("Logged out")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVarP(&username, "username", "u", "", "Librarian username")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
}
