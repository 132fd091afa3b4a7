package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bookworm-labs/alexandria/cli/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "alexandria",
	Short:   "Personal reading tracker",
	Long:    `Alexandria tracks the books you read: search the catalog, build your library, and watch your reading stats grow.`,
	Version: "1.0.0",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local configuration",
	Long:  `Create ~/.alexandria/config.yaml with default server settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			printError("Failed to initialize configuration")
			return err
		}
		path, _ := config.GetConfigPath()
		printSuccess(fmt.Sprintf("Configuration ready at %s", path))
		return nil
	},
}

func Execute() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(systemCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printSuccess(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// doAuthorized performs a request with the stored session token attached.
func doAuthorized(method, url string, body io.Reader) (*http.Response, error) {
	token, err := config.GetToken()
	if err != nil {
		printError("Not logged in")
		fmt.Println("Run: alexandria auth login --username <name>")
		return nil, err
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return httpClient().Do(req)
}

func decodeError(body []byte) string {
	var errRes map[string]string
	if err := json.Unmarshal(body, &errRes); err == nil && errRes["error"] != "" {
		return errRes["error"]
	}
	return "unexpected server response"
}
