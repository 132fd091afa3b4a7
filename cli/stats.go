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

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, err := config.GetServerURL()
		if err != nil {
			printError("Configuration not initialized")
			fmt.Println("Run: alexandria init")
			return err
		}

		res, err := httpClient().Get(serverURL + "/api/stats")
		if err != nil {
			printError("Server connection error")
			return err
		}
		defer res.Body.Close()

		body, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Failed to fetch stats: %s", decodeError(body)))
			return fmt.Errorf("stats failed")
		}

		var s models.Stats
		json.Unmarshal(body, &s)

		fmt.Println("Reading Statistics")
		fmt.Println("------------------")
		fmt.Printf("Books read:        %d\n", s.TotalBooksRead)
		fmt.Printf("Pages read:        %d\n", s.TotalPagesRead)
		fmt.Printf("Avg pages/book:    %d\n", s.AvgPagesPerBook)
		fmt.Printf("Avg pages/month:   %d\n", s.AvgPagesPerMonth)
		fmt.Printf("Avg days/book:     %d\n", s.AvgDaysPerBook)
		fmt.Printf("Reading hours:     %d\n", s.TotalReadingHours)
		fmt.Printf("Completion rate:   %d%%\n", s.CompletionRate)

		fmt.Println("\nCuriosities")
		fmt.Println("-----------")
		fmt.Printf("Book tower:        %.2f m\n", s.TowerHeightM)
		fmt.Printf("Ink consumed:      %.3f L\n", s.InkLitres)
		fmt.Printf("Favorite decade:   %s\n", s.MostReadDecade)
		fmt.Printf("Favorite day:      %s\n", s.FavoriteDay)
		fmt.Printf("Languages:         %d\n", s.NumLanguages)
		if s.AvgPublicRating != nil {
			fmt.Printf("Avg rating:        %.1f\n", *s.AvgPublicRating)
		} else {
			fmt.Println("Avg rating:        N/A")
		}
		fmt.Printf("Solo authors:      %d%%\n", s.SoloRatio)
		fmt.Printf("Words read:        %.2fM\n", s.WordsMillion)
		fmt.Printf("Eye travel:        %.2f km\n", s.DistanceKM)
		if s.OldestBook != nil {
			fmt.Printf("Oldest book:       %s (%s)\n", s.OldestBook.Title, s.OldestBook.PublishedYear)
		}

		if len(s.TopCategoryLabels) > 0 {
			fmt.Println("\nTop categories")
			fmt.Println("--------------")
			for i, label := range s.TopCategoryLabels {
				fmt.Printf("  %-24s %d\n", label, s.TopCategoryData[i])
			}
		}
		return nil
	},
}
