package api

import (
	"time"

	"drinkjoy/backend/internal/domain"
	"drinkjoy/backend/internal/scoring"
)

// RecommendRequest is the wizard-side matching request.
type RecommendRequest struct {
	Preferences domain.Preferences `json:"preferences"`
	Limit       int                `json:"limit"`
}

// MoreRequest asks for supplementary options beyond an already-shown set.
type MoreRequest struct {
	Preferences   domain.Preferences `json:"preferences"`
	ExcludeIDs    []string           `json:"exclude_ids"`
	Limit         int                `json:"limit"`
	AllCategories bool               `json:"all_categories"`
}

// ChatMatchRequest is the simplified preference object extracted from a
// conversational turn.
type ChatMatchRequest struct {
	Category  string   `json:"category"`
	Flavor    string   `json:"flavor"`
	Strength  string   `json:"strength"`
	Occasion  string   `json:"occasion"`
	Allergies []string `json:"allergies"`
}

// Preferences converts the chat request into the shared preference shape.
func (r ChatMatchRequest) Preferences() domain.Preferences {
	return domain.Preferences{
		Category:  r.Category,
		Flavor:    r.Flavor,
		Strength:  r.Strength,
		Occasion:  r.Occasion,
		Allergies: r.Allergies,
	}
}

// RecommendationDTO is one ranked result entry.
type RecommendationDTO struct {
	Drink   DrinkDTO `json:"drink"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// RecommendResponse is the ranked recommendation payload.
type RecommendResponse struct {
	SessionID        string              `json:"session_id"`
	Items            []RecommendationDTO `json:"items"`
	WeatherUsed      bool                `json:"weather_used"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
}

// ChatMatchResponse carries the tiered matches for a conversational reply.
type ChatMatchResponse struct {
	SessionID        string              `json:"session_id"`
	PerfectMatches   []RecommendationDTO `json:"perfect_matches"`
	GoodMatches      []RecommendationDTO `json:"good_matches"`
	OtherMatches     []RecommendationDTO `json:"other_matches"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
}

// DrinkDTO is the API representation of a catalog drink.
type DrinkDTO struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Category        string                  `json:"category"`
	Strength        string                  `json:"strength"`
	ABV             float64                 `json:"abv"`
	FlavorProfile   []string                `json:"flavor_profile"`
	Ingredients     []string                `json:"ingredients"`
	Occasions       []string                `json:"occasions"`
	WeatherMatch    *domain.WeatherMatch    `json:"weather_match,omitempty"`
	Featured        bool                    `json:"featured"`
	HappyHour       bool                    `json:"happy_hour"`
	HappyHourWindow *domain.HappyHourWindow `json:"happy_hour_window,omitempty"`
	HappyHourPrice  string                  `json:"happy_hour_price,omitempty"`
	FunForTwentyOne bool                    `json:"fun_for_twenty_one"`
	GoodForBDay     bool                    `json:"good_for_bday"`
	Preparation     string                  `json:"preparation,omitempty"`
	Likes           int                     `json:"likes"`
	CreatedAt       time.Time               `json:"created_at,omitempty"`
}

// DrinksResponse is the paginated catalog listing.
type DrinksResponse struct {
	Items []DrinkDTO `json:"items"`
	Total int64      `json:"total"`
}

// DrinkFromDomain converts a catalog drink into its DTO.
func DrinkFromDomain(d domain.Drink, likes int) DrinkDTO {
	return DrinkDTO{
		ID:              d.ID,
		Name:            d.Name,
		Category:        string(d.Category),
		Strength:        d.Strength,
		ABV:             d.ABV,
		FlavorProfile:   d.FlavorProfile,
		Ingredients:     d.Ingredients,
		Occasions:       d.Occasions,
		WeatherMatch:    d.WeatherMatch,
		Featured:        d.Featured,
		HappyHour:       d.HappyHour,
		HappyHourWindow: d.HappyHourWindow,
		HappyHourPrice:  d.HappyHourPrice,
		FunForTwentyOne: d.FunForTwentyOne,
		GoodForBDay:     d.GoodForBDay,
		Preparation:     d.Preparation,
		Likes:           likes,
	}
}

func candidatesToDTO(candidates []domain.ScoredCandidate, likes map[string]int) []RecommendationDTO {
	out := make([]RecommendationDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, RecommendationDTO{
			Drink:   DrinkFromDomain(c.Drink, likes[c.Drink.ID]),
			Score:   c.Score,
			Reasons: c.Reasons,
		})
	}
	return out
}

func tiersToDTO(matches scoring.ChatMatches, likes map[string]int) (perfect, good, other []RecommendationDTO) {
	return candidatesToDTO(matches.Perfect, likes),
		candidatesToDTO(matches.Good, likes),
		candidatesToDTO(matches.Other, likes)
}
