package models

// Stats is the full bundle served by the statistics dashboard. Every field is
// a defined function of the current record set; missing optional data yields
// the documented default rather than an error.
type Stats struct {
	// Volume
	TotalBooksRead   int `json:"total_books_read"`
	TotalPagesRead   int `json:"total_pages_read"`
	AvgPagesPerBook  int `json:"avg_pages_per_book"`
	AvgPagesPerMonth int `json:"avg_pages_per_month"`
	AvgPagesPerYear  int `json:"avg_pages_per_year"`

	// Pages finished per calendar month, chronological. Labels and Data are
	// always the same length.
	PagesHistoryLabels []string `json:"pages_history_labels"`
	PagesHistoryData   []int    `json:"pages_history_data"`

	LongestBook  *Book `json:"longest_book"`
	ShortestBook *Book `json:"shortest_book"`

	// Time & speed
	AvgDaysPerBook    int   `json:"avg_days_per_book"`
	FastestBook       *Book `json:"fastest_book"`
	SlowestBook       *Book `json:"slowest_book"`
	FastestDays       int   `json:"fastest_days"`
	SlowestDays       int   `json:"slowest_days"`
	TotalReadingHours int   `json:"total_reading_hours"`
	CompletionRate    int   `json:"completion_rate"`

	// Trends & habits
	Seasons           map[string]int            `json:"seasons"`
	CategoryDiversity int                       `json:"category_diversity"`
	BooksByYearMonth  map[string]map[string]int `json:"books_by_year_month"`
	TopCategoryLabels []string                  `json:"top_category_labels"`
	TopCategoryData   []int                     `json:"top_category_data"`

	// Novelty
	TowerHeightM    float64  `json:"tower_height_m"`
	InkLitres       float64  `json:"ink_litres"`
	MostReadDecade  string   `json:"most_read_decade"`
	FavoriteDay     string   `json:"favorite_day"`
	NumLanguages    int      `json:"num_languages"`
	AvgPublicRating *float64 `json:"avg_public_rating"`
	SoloRatio       int      `json:"solo_ratio"`
	WordsMillion    float64  `json:"words_million"`
	OldestBook      *Book    `json:"oldest_book"`
	DistanceKM      float64  `json:"distance_km"`
}
