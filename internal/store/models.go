package store

import (
	"encoding/json"
	"strings"
	"time"

	"drinkjoy/backend/internal/domain"
)

// DrinkRecord is a catalog drink persisted in SQLite. Slice and struct
// fields are stored as JSON text columns.
type DrinkRecord struct {
	ID                  string `gorm:"primaryKey;size:64"`
	Name                string `gorm:"size:128;index"`
	Category            string `gorm:"size:32;index"`
	Strength            string `gorm:"size:32"`
	ABV                 float64
	FlavorProfileJSON   string `gorm:"type:text"`
	IngredientsJSON     string `gorm:"type:text"`
	OccasionsJSON       string `gorm:"type:text"`
	WeatherMatchJSON    string `gorm:"type:text"`
	Featured            bool   `gorm:"index"`
	HappyHour           bool   `gorm:"index"`
	HappyHourWindowJSON string `gorm:"type:text"`
	HappyHourPrice      string `gorm:"size:32"`
	FunForTwentyOne     bool
	GoodForBDay         bool
	Preparation         string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DrinkLike is one recorded like for a drink.
type DrinkLike struct {
	ID        uint      `gorm:"primaryKey"`
	DrinkID   string    `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// LikeCount is the aggregated popularity row for one drink.
type LikeCount struct {
	DrinkID string
	Total   int
}

// FromDomain converts a catalog drink into its persisted form.
func FromDomain(d domain.Drink) DrinkRecord {
	rec := DrinkRecord{
		ID:              strings.TrimSpace(d.ID),
		Name:            d.Name,
		Category:        string(d.Category),
		Strength:        d.Strength,
		ABV:             d.ABV,
		Featured:        d.Featured,
		HappyHour:       d.HappyHour,
		HappyHourPrice:  d.HappyHourPrice,
		FunForTwentyOne: d.FunForTwentyOne,
		GoodForBDay:     d.GoodForBDay,
		Preparation:     d.Preparation,
	}
	rec.FlavorProfileJSON = marshalStrings(d.FlavorProfile)
	rec.IngredientsJSON = marshalStrings(d.Ingredients)
	rec.OccasionsJSON = marshalStrings(d.Occasions)
	if d.WeatherMatch != nil {
		payload, _ := json.Marshal(d.WeatherMatch)
		rec.WeatherMatchJSON = string(payload)
	}
	if d.HappyHourWindow != nil {
		payload, _ := json.Marshal(d.HappyHourWindow)
		rec.HappyHourWindowJSON = string(payload)
	}
	return rec
}

// ToDomain converts the persisted record back into a catalog drink.
func (r DrinkRecord) ToDomain() domain.Drink {
	d := domain.Drink{
		ID:              r.ID,
		Name:            r.Name,
		Category:        domain.Category(r.Category),
		Strength:        r.Strength,
		ABV:             r.ABV,
		FlavorProfile:   unmarshalStrings(r.FlavorProfileJSON),
		Ingredients:     unmarshalStrings(r.IngredientsJSON),
		Occasions:       unmarshalStrings(r.OccasionsJSON),
		Featured:        r.Featured,
		HappyHour:       r.HappyHour,
		HappyHourPrice:  r.HappyHourPrice,
		FunForTwentyOne: r.FunForTwentyOne,
		GoodForBDay:     r.GoodForBDay,
		Preparation:     r.Preparation,
	}
	if strings.TrimSpace(r.WeatherMatchJSON) != "" {
		var wm domain.WeatherMatch
		if err := json.Unmarshal([]byte(r.WeatherMatchJSON), &wm); err == nil {
			d.WeatherMatch = &wm
		}
	}
	if strings.TrimSpace(r.HappyHourWindowJSON) != "" {
		var window domain.HappyHourWindow
		if err := json.Unmarshal([]byte(r.HappyHourWindowJSON), &window); err == nil {
			d.HappyHourWindow = &window
		}
	}
	return d
}

func marshalStrings(values []string) string {
	if values == nil {
		return "[]"
	}
	payload, _ := json.Marshal(values)
	return string(payload)
}

func unmarshalStrings(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
