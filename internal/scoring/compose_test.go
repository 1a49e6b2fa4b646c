package scoring

import (
	"math/rand"
	"testing"
	"time"

	"drinkjoy/backend/internal/domain"
)

func TestComposeNonAlcoholicOnly(t *testing.T) {
	engine := newTestEngine(t)
	catalog := []domain.Drink{
		{ID: "ipa", Name: "Hazy IPA", Category: domain.CategoryBeer, ABV: 6.5, FlavorProfile: []string{"bitter"}},
		{ID: "malbec", Name: "Malbec", Category: domain.CategoryWine, ABV: 14, FlavorProfile: []string{"smokey"}},
		{ID: "cooler", Name: "Cucumber Cooler", Category: domain.CategoryNonAlcoholic, ABV: 0, FlavorProfile: []string{"refreshing"}},
	}
	prefs := domain.Preferences{Category: "non-alcoholic", Flavor: "refreshing", Strength: "light"}

	got := engine.Compose(catalog, prefs, nil, nil, 0)
	if len(got) != 1 {
		t.Fatalf("expected exactly the non-alcoholic drink, got %d results", len(got))
	}
	if got[0].Drink.ID != "cooler" {
		t.Fatalf("expected cooler, got %s", got[0].Drink.ID)
	}
}

func TestComposeAllergyNeverSurfaces(t *testing.T) {
	engine := newTestEngine(t)
	catalog := []domain.Drink{
		{
			ID: "weisse", Name: "Berliner Weisse", Category: domain.CategoryBeer, ABV: 3.5,
			FlavorProfile: []string{"crisp"},
			Ingredients:   []string{"wheat malt", "barley", "hops"},
		},
		{
			ID: "riesling", Name: "Riesling", Category: domain.CategoryWine, ABV: 11,
			FlavorProfile: []string{"crisp"},
			Ingredients:   []string{"riesling grapes"},
		},
	}
	prefs := domain.Preferences{Category: "any", Flavor: "crisp", Allergies: []string{"gluten"}}

	got := engine.Compose(catalog, prefs, nil, nil, 0)
	if len(got) != 1 {
		t.Fatalf("expected one safe result, got %d", len(got))
	}
	if got[0].Drink.ID != "riesling" {
		t.Fatalf("gluten-unsafe beer surfaced: %s", got[0].Drink.ID)
	}
}

func TestComposeHappyHourFrontOfBucket(t *testing.T) {
	engine := newTestEngine(t, WithClock(func() time.Time { return at(17, 0) }))
	// Both drinks land in the 50s bucket: quiet = flavor 25 + occasion 15 +
	// popularity 10; special = flavor 25 + happy hour 25.
	catalog := []domain.Drink{
		{
			ID: "quiet", Name: "Quiet Pour", Category: domain.CategoryWine, ABV: 13,
			FlavorProfile: []string{"sweet"},
			Occasions:     []string{"relaxing"},
		},
		{
			ID: "special", Name: "House Special", Category: domain.CategoryCocktail, ABV: 14,
			FlavorProfile: []string{"sweet"},
			HappyHour:     true,
		},
	}
	prefs := domain.Preferences{Category: "any", Flavor: "sweet", Occasion: "relaxing"}
	popularity := map[string]int{"quiet": 20}

	got := engine.Compose(catalog, prefs, nil, popularity, 0)
	if len(got) != 2 {
		t.Fatalf("expected both drinks, got %d", len(got))
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("test setup broken, scores differ: %d vs %d", got[0].Score, got[1].Score)
	}
	if got[0].Drink.ID != "special" {
		t.Fatalf("happy-hour drink should lead its bucket, got %s first", got[0].Drink.ID)
	}
}

func TestComposeExceptionalMatchesLead(t *testing.T) {
	engine := newTestEngine(t)
	catalog := []domain.Drink{
		{ID: "ok", Name: "Fine Cocktail", Category: domain.CategoryCocktail, ABV: 15, FlavorProfile: []string{"sour"}},
		{
			// flavor 25 + category 20 + strength 20 + occasion 15 + compound 10 = 90
			ID: "star", Name: "Star Cocktail", Category: domain.CategoryCocktail, ABV: 10,
			FlavorProfile: []string{"sweet"},
			Occasions:     []string{"party"},
		},
	}
	prefs := domain.Preferences{Category: "cocktail", Flavor: "sweet", Strength: "light", Occasion: "party"}

	got := engine.Compose(catalog, prefs, nil, nil, 0)
	if len(got) != 2 {
		t.Fatalf("expected two results, got %d", len(got))
	}
	if got[0].Drink.ID != "star" || got[0].Score < 90 {
		t.Fatalf("90+ match must lead the list, got %s (%d)", got[0].Drink.ID, got[0].Score)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score >= 90 && got[i-1].Score < 90 {
			t.Fatalf("sub-90 result at %d precedes a 90+ result", i-1)
		}
	}
}

func TestComposeLimit(t *testing.T) {
	engine := newTestEngine(t)
	var catalog []domain.Drink
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		catalog = append(catalog, domain.Drink{
			ID: id, Name: id, Category: domain.CategoryBeer, ABV: 5,
			FlavorProfile: []string{"crisp"},
		})
	}
	prefs := domain.Preferences{Category: "beer", Flavor: "crisp"}

	if got := engine.Compose(catalog, prefs, nil, nil, 0); len(got) != defaultLimit {
		t.Fatalf("default limit should cap at %d, got %d", defaultLimit, len(got))
	}
	if got := engine.Compose(catalog, prefs, nil, nil, 3); len(got) != 3 {
		t.Fatalf("explicit limit ignored, got %d results", len(got))
	}
}

func TestComposeDeterministicWithSeed(t *testing.T) {
	safety, err := NewSafetyFilter("")
	if err != nil {
		t.Fatalf("NewSafetyFilter: %v", err)
	}
	catalog := []domain.Drink{
		{ID: "one", Name: "One", Category: domain.CategoryCocktail, ABV: 12, FlavorProfile: []string{"sweet"}},
		{ID: "two", Name: "Two", Category: domain.CategoryCocktail, ABV: 18, FlavorProfile: []string{"sweet"}},
		{ID: "three", Name: "Three", Category: domain.CategoryCocktail, ABV: 25, FlavorProfile: []string{"sweet", "spicy"}},
		{ID: "four", Name: "Four", Category: domain.CategoryCocktail, ABV: 30, FlavorProfile: []string{"bitter"}},
	}
	prefs := domain.Preferences{Category: "cocktail", Flavor: "sweet"}
	clock := func() time.Time { return at(12, 0) }

	run := func() []string {
		engine := NewEngine(safety, WithRand(rand.New(rand.NewSource(42))), WithClock(clock))
		var ids []string
		for _, c := range engine.Compose(catalog, prefs, nil, nil, 0) {
			ids = append(ids, c.Drink.ID)
		}
		return ids
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different order at %d: %s vs %s", i, first[i], second[i])
		}
	}
}
