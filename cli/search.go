package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bookworm-labs/alexandria/cli/config"
	"github.com/bookworm-labs/alexandria/pkg/models"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the book catalog",
	Long:  `Search the external book catalog by free-text query. Use the printed catalog ids with "alexandria library add".`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: alexandria init")
			return err
		}

		query := url.QueryEscape(args[0])
		res, err := doAuthorized(http.MethodGet, serverURL+"/api/catalog/search?q="+query, nil)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Search failed: %s", decodeError(body)))
			return fmt.Errorf("search failed")
		}

		var searchRes struct {
			Results []models.CatalogBook `json:"results"`
			Count   int                  `json:"count"`
		}
		json.Unmarshal(body, &searchRes)

		if searchRes.Count == 0 {
			fmt.Println("No results.")
			return nil
		}

		fmt.Printf("Found %d result(s):\n\n", searchRes.Count)
		for _, b := range searchRes.Results {
			pages := "?"
			if b.PageCount != nil {
				pages = fmt.Sprintf("%d", *b.PageCount)
			}
			fmt.Printf("  %s\n", b.Title)
			fmt.Printf("    by %s | %s pages | %s\n", orDash(b.Authors), pages, orDash(b.PublishedYear))
			fmt.Printf("    id: %s\n\n", b.GoogleBooksID)
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
