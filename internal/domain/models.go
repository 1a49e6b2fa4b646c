package domain

// Category is the closed set of drink categories in the catalog.
type Category string

const (
	CategoryCocktail     Category = "cocktail"
	CategoryBeer         Category = "beer"
	CategoryWine         Category = "wine"
	CategorySpirit       Category = "spirit"
	CategoryNonAlcoholic Category = "non-alcoholic"
)

// Category filter sentinels accepted in Preferences.Category alongside the
// concrete categories above.
const (
	FilterAny      = "any"
	FilterFeatured = "featured"
)

// AllergyNone is the sentinel a caller may include in the allergy list; it
// matches nothing and is skipped by the safety filter.
const AllergyNone = "none"

// ValidCategory reports whether the value is one of the catalog categories.
func ValidCategory(value string) bool {
	switch Category(value) {
	case CategoryCocktail, CategoryBeer, CategoryWine, CategorySpirit, CategoryNonAlcoholic:
		return true
	}
	return false
}

// WeatherMatch describes the outdoor conditions a drink suits.
type WeatherMatch struct {
	IdealTempC float64  `json:"ideal_temp_c"`
	MinTempC   float64  `json:"min_temp_c"`
	MaxTempC   float64  `json:"max_temp_c"`
	Conditions []string `json:"conditions"`
}

// HappyHourWindow bounds the daily happy-hour period as "HH:MM" strings.
type HappyHourWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Drink is a read-only catalog entry.
type Drink struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        Category         `json:"category"`
	Strength        string           `json:"strength"`
	ABV             float64          `json:"abv"`
	FlavorProfile   []string         `json:"flavor_profile"`
	Ingredients     []string         `json:"ingredients"`
	Occasions       []string         `json:"occasions"`
	WeatherMatch    *WeatherMatch    `json:"weather_match,omitempty"`
	Featured        bool             `json:"featured"`
	HappyHour       bool             `json:"happy_hour"`
	HappyHourWindow *HappyHourWindow `json:"happy_hour_window,omitempty"`
	HappyHourPrice  string           `json:"happy_hour_price,omitempty"`
	FunForTwentyOne bool             `json:"fun_for_twenty_one"`
	GoodForBDay     bool             `json:"good_for_bday"`
	Preparation     string           `json:"preparation,omitempty"`
}

// Preferences carries one matching request. Every field is optional; an
// absent field means "do not filter or score on this dimension".
type Preferences struct {
	Category       string   `json:"category,omitempty"`
	Flavor         string   `json:"flavor,omitempty"`
	Strength       string   `json:"strength,omitempty"`
	Occasion       string   `json:"occasion,omitempty"`
	Temperature    string   `json:"temperature,omitempty"`
	AdventureStyle string   `json:"adventure_style,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
	UseWeather     bool     `json:"use_weather,omitempty"`
}

// WeatherReading is the current external weather snapshot, when available.
type WeatherReading struct {
	TempC       float64 `json:"temp_c"`
	Condition   string  `json:"condition"`
	Description string  `json:"description,omitempty"`
}

// ScoredCandidate pairs a drink with its score and the human-readable
// reasons behind it. Created fresh per matching call, never persisted.
type ScoredCandidate struct {
	Drink   Drink    `json:"drink"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
