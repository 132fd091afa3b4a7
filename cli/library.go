package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bookworm-labs/alexandria/cli/config"
	"github.com/bookworm-labs/alexandria/pkg/models"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your library",
	Long:  `List the books in your library, add catalog entries, mark books finished, and delete records.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your library",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		res, err := httpClient().Get(serverURL + "/api/library")
		if err != nil {
			printError("Server connection error")
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Failed to fetch library: %s", decodeError(body)))
			return fmt.Errorf("list failed")
		}

		var lib models.Library
		json.Unmarshal(body, &lib)

		fmt.Printf("Reading (%d):\n", len(lib.Reading))
		printBooks(lib.Reading)
		fmt.Printf("\nFinished (%d):\n", len(lib.Finished))
		printBooks(lib.Finished)
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <catalog-id>",
	Short: "Import a catalog entry into your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		res, err := doAuthorized(http.MethodPost, serverURL+"/api/library/"+args[0], nil)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		switch res.StatusCode {
		case http.StatusCreated:
			var book models.Book
			json.Unmarshal(body, &book)
			printSuccess(fmt.Sprintf("Added %q to your library", book.Title))
		case http.StatusOK:
			fmt.Println("Already in your library, nothing to do.")
		case http.StatusNotFound:
			printError("No such book in the catalog")
			return fmt.Errorf("catalog id not found")
		default:
			printError(fmt.Sprintf("Import failed: %s", decodeError(body)))
			return fmt.Errorf("import failed")
		}
		return nil
	},
}

var libraryFinishCmd = &cobra.Command{
	Use:   "finish <book-id>",
	Short: "Mark a book as finished",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		res, err := doAuthorized(http.MethodPost, serverURL+"/api/books/"+args[0]+"/finish", nil)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode == http.StatusNotFound {
			printError("Book not found")
			return fmt.Errorf("book not found")
		}
		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Failed: %s", decodeError(body)))
			return fmt.Errorf("finish failed")
		}

		printSuccess("Marked as finished")
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a book from your library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		res, err := doAuthorized(http.MethodDelete, serverURL+"/api/books/"+args[0], nil)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode == http.StatusNotFound {
			printError("Book not found")
			return fmt.Errorf("book not found")
		}
		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Failed: %s", decodeError(body)))
			return fmt.Errorf("delete failed")
		}

		printSuccess("Deleted")
		return nil
	},
}

func printBooks(books []models.Book) {
	if len(books) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, b := range books {
		fmt.Printf("  %s by %s\n", b.Title, orDash(b.Authors))
		fmt.Printf("    id: %s\n", b.ID)
	}
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryFinishCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
}
