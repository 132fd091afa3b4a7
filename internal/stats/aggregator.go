package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bookworm-labs/alexandria/pkg/models"
)

// Compute derives the full statistics bundle from the current record set. It
// is pure and total: same input always yields the same output, no field is
// ever an error. Records marked finished without a completion timestamp are
// excluded from every finished-set metric.
func Compute(all []models.Book, now time.Time) *models.Stats {
	finished := finishedRecords(all)

	s := &models.Stats{
		PagesHistoryLabels: []string{},
		PagesHistoryData:   []int{},
		Seasons:            map[string]int{"Winter": 0, "Spring": 0, "Summer": 0, "Autumn": 0},
		BooksByYearMonth:   map[string]map[string]int{},
		TopCategoryLabels:  []string{},
		TopCategoryData:    []int{},
		MostReadDecade:     "N/A",
		FavoriteDay:        "Unknown",
	}

	// Volume
	s.TotalBooksRead = len(finished)
	for _, b := range finished {
		if b.PageCount != nil {
			s.TotalPagesRead += *b.PageCount
		}
	}
	if s.TotalBooksRead > 0 {
		s.AvgPagesPerBook = s.TotalPagesRead / s.TotalBooksRead
	}

	// Activity window: both denominators default to 1 when nothing is
	// finished yet.
	monthsActive, yearsActive := 1.0, 1.0
	if len(finished) > 0 {
		firstFinish := *finished[0].DateFinished
		for _, b := range finished[1:] {
			if b.DateFinished.Before(firstFinish) {
				firstFinish = *b.DateFinished
			}
		}
		daysActive := float64(int(now.Sub(firstFinish).Hours()/24) + 1)
		monthsActive = math.Max(daysActive/30, 1)
		yearsActive = math.Max(daysActive/365, 1)
	}
	s.AvgPagesPerMonth = int(float64(s.TotalPagesRead) / monthsActive)
	s.AvgPagesPerYear = int(float64(s.TotalPagesRead) / yearsActive)

	s.PagesHistoryLabels, s.PagesHistoryData = pagesOverTime(finished)
	s.LongestBook, s.ShortestBook = pageExtremes(finished)

	computeVelocity(s, finished)

	// Two minutes of reading per page.
	s.TotalReadingHours = s.TotalPagesRead * 2 / 60

	if len(all) > 0 {
		s.CompletionRate = s.TotalBooksRead * 100 / len(all)
	}

	for _, b := range finished {
		s.Seasons[season(b.DateFinished.Month())]++
	}

	// Diversity counts distinct category tags across every record, not just
	// finished ones.
	unique := map[string]struct{}{}
	for _, b := range all {
		for _, cat := range splitTags(b.Categories) {
			unique[cat] = struct{}{}
		}
	}
	s.CategoryDiversity = len(unique)

	for _, b := range finished {
		year := b.DateFinished.Format("2006")
		month := b.DateFinished.Month().String()
		if s.BooksByYearMonth[year] == nil {
			s.BooksByYearMonth[year] = map[string]int{}
		}
		s.BooksByYearMonth[year][month]++
	}

	s.TopCategoryLabels, s.TopCategoryData = topCategories(finished)

	computeNovelty(s, finished)

	return s
}

func finishedRecords(all []models.Book) []models.Book {
	finished := []models.Book{}
	for _, b := range all {
		if b.Status == models.StatusFinished && b.DateFinished != nil {
			finished = append(finished, b)
		}
	}
	return finished
}

// pagesOverTime buckets finished pages by calendar month, chronologically.
func pagesOverTime(finished []models.Book) ([]string, []int) {
	buckets := map[string]int{}
	for _, b := range finished {
		if b.PageCount == nil {
			continue
		}
		key := b.DateFinished.Format("2006-01")
		buckets[key] += *b.PageCount
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	labels := make([]string, 0, len(keys))
	data := make([]int, 0, len(keys))
	for _, k := range keys {
		t, err := time.Parse("2006-01", k)
		if err != nil {
			continue
		}
		labels = append(labels, t.Format("Jan 2006"))
		data = append(data, buckets[k])
	}
	return labels, data
}

func pageExtremes(finished []models.Book) (longest, shortest *models.Book) {
	for i := range finished {
		b := &finished[i]
		if b.PageCount == nil {
			continue
		}
		if longest == nil || *b.PageCount > *longest.PageCount {
			longest = b
		}
		if shortest == nil || *b.PageCount < *shortest.PageCount {
			shortest = b
		}
	}
	return longest, shortest
}

// computeVelocity measures whole days between adding and finishing each book.
// Records whose interval comes out negative are malformed and silently
// dropped; that is the defined tolerance policy, they still count everywhere
// else.
func computeVelocity(s *models.Stats, finished []models.Book) {
	totalDays := 0
	count := 0
	for i := range finished {
		b := &finished[i]
		days := int(math.Floor(b.DateFinished.Sub(b.DateAdded).Hours() / 24))
		if days < 0 {
			continue
		}
		totalDays += days
		count++
		if s.FastestBook == nil || days < s.FastestDays {
			s.FastestBook = b
			s.FastestDays = days
		}
		if s.SlowestBook == nil || days > s.SlowestDays {
			s.SlowestBook = b
			s.SlowestDays = days
		}
	}
	if count > 0 {
		s.AvgDaysPerBook = totalDays / count
	}
}

func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Autumn"
	}
}

// topCategories counts tag occurrences over the finished set and keeps the
// five most frequent, folding the rest into an "Others" bucket. Equal counts
// are ordered by name so the chart is stable between recomputes.
func topCategories(finished []models.Book) ([]string, []int) {
	counts := map[string]int{}
	for _, b := range finished {
		for _, cat := range splitTags(b.Categories) {
			counts[cat]++
		}
	}

	type catCount struct {
		name  string
		count int
	}
	sorted := make([]catCount, 0, len(counts))
	for name, count := range counts {
		sorted = append(sorted, catCount{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	labels := []string{}
	data := []int{}
	if len(sorted) > 5 {
		others := 0
		for _, cc := range sorted[5:] {
			others += cc.count
		}
		for _, cc := range sorted[:5] {
			labels = append(labels, cc.name)
			data = append(data, cc.count)
		}
		labels = append(labels, "Others")
		data = append(data, others)
	} else {
		for _, cc := range sorted {
			labels = append(labels, cc.name)
			data = append(data, cc.count)
		}
	}
	return labels, data
}

func computeNovelty(s *models.Stats, finished []models.Book) {
	// A page is roughly 0.05mm thick.
	s.TowerHeightM = round2(float64(s.TotalPagesRead) * 0.00005)
	// Roughly a millilitre of ink per fifty pages.
	s.InkLitres = round3(float64(s.TotalPagesRead) / 50000)

	decades := map[string]int{}
	for _, b := range finished {
		if isFourDigitYear(b.PublishedYear) {
			decades[b.PublishedYear[:3]+"0s"]++
		}
	}
	if d, ok := mode(decades); ok {
		s.MostReadDecade = d
	}

	days := map[string]int{}
	for _, b := range finished {
		days[b.DateFinished.Weekday().String()]++
	}
	if d, ok := mode(days); ok {
		s.FavoriteDay = d
	}

	langs := map[string]struct{}{}
	for _, b := range finished {
		if b.Language != "" {
			langs[b.Language] = struct{}{}
		}
	}
	s.NumLanguages = len(langs)

	ratingSum, ratingCount := 0.0, 0
	for _, b := range finished {
		if b.AverageRating != nil {
			ratingSum += *b.AverageRating
			ratingCount++
		}
	}
	if ratingCount > 0 {
		avg := math.Round(ratingSum/float64(ratingCount)*10) / 10
		s.AvgPublicRating = &avg
	}

	solo := 0
	for _, b := range finished {
		if b.Authors != "" && !strings.Contains(b.Authors, ",") {
			solo++
		}
	}
	if s.TotalBooksRead > 0 {
		s.SoloRatio = solo * 100 / s.TotalBooksRead
	}

	// 250 words per page.
	s.WordsMillion = round2(float64(s.TotalPagesRead) * 250 / 1000000)

	for i := range finished {
		b := &finished[i]
		if !isNumeric(b.PublishedYear) {
			continue
		}
		if s.OldestBook == nil || yearValue(b.PublishedYear) < yearValue(s.OldestBook.PublishedYear) {
			s.OldestBook = b
		}
	}

	// Three metres of eye travel per page.
	s.DistanceKM = round2(float64(s.TotalPagesRead) * 3 / 1000)
}

// mode returns the key with the highest count. Ties break toward the
// lexicographically smallest key so the result is deterministic.
func mode(counts map[string]int) (string, bool) {
	best := ""
	bestCount := -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount >= 0
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func isFourDigitYear(s string) bool {
	return len(s) == 4 && isNumeric(s)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func yearValue(s string) int {
	v := 0
	for _, r := range s {
		v = v*10 + int(r-'0')
	}
	return v
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
