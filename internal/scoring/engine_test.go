package scoring

import (
	"math/rand"
	"testing"
	"time"

	"drinkjoy/backend/internal/domain"
)

// seqRand replays a fixed sequence of values; with no values it always
// returns 0.5, which makes the perturbation step an identity.
type seqRand struct {
	values []float64
	next   int
}

func (r *seqRand) Float64() float64 {
	if len(r.values) == 0 {
		return 0.5
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	safety, err := NewSafetyFilter("")
	if err != nil {
		t.Fatalf("NewSafetyFilter: %v", err)
	}
	base := []Option{WithRand(&seqRand{}), WithClock(func() time.Time { return at(12, 0) })}
	return NewEngine(safety, append(base, opts...)...)
}

func TestEngineCategoryExclusion(t *testing.T) {
	engine := newTestEngine(t)
	drink := domain.Drink{
		ID:            "d1",
		Name:          "Test Cocktail",
		Category:      domain.CategoryCocktail,
		FlavorProfile: []string{"sweet"},
	}

	if got := engine.ScoreDrink(drink, domain.Preferences{Category: "wine", Flavor: "sweet"}, nil, 0); got != nil {
		t.Fatalf("category mismatch should exclude, got score %d", got.Score)
	}
	got := engine.ScoreDrink(drink, domain.Preferences{Category: "any", Flavor: "sweet"}, nil, 0)
	if got == nil {
		t.Fatal("category any should never exclude")
	}
	if got.Score != 25 {
		t.Fatalf("with category any only flavor should count: got %d want 25", got.Score)
	}
	got = engine.ScoreDrink(drink, domain.Preferences{Category: "cocktail", Flavor: "sweet"}, nil, 0)
	if got == nil || got.Score != 45 {
		t.Fatalf("matching category should add 20: got %+v", got)
	}
}

func TestEngineFeaturedFilter(t *testing.T) {
	engine := newTestEngine(t)
	plain := domain.Drink{ID: "p", Name: "Plain", Category: domain.CategoryBeer}
	featured := domain.Drink{ID: "f", Name: "Featured", Category: domain.CategoryBeer, Featured: true}
	prefs := domain.Preferences{Category: "featured"}

	if got := engine.ScoreDrink(plain, prefs, nil, 0); got != nil {
		t.Fatalf("non-featured drink should be excluded, got %d", got.Score)
	}
	got := engine.ScoreDrink(featured, prefs, nil, 0)
	if got == nil {
		t.Fatal("featured drink excluded")
	}
	if got.Score != 35 {
		t.Fatalf("featured filter should stack category and featured points: got %d want 35", got.Score)
	}
}

func TestEngineAllergyExclusion(t *testing.T) {
	engine := newTestEngine(t)
	beer := domain.Drink{
		ID:            "b1",
		Name:          "Amber Lager",
		Category:      domain.CategoryBeer,
		FlavorProfile: []string{"crisp"},
		Ingredients:   []string{"water", "malted barley", "hops"},
	}
	prefs := domain.Preferences{Category: "beer", Flavor: "crisp", Allergies: []string{"gluten"}}
	if got := engine.ScoreDrink(beer, prefs, nil, 0); got != nil {
		t.Fatalf("gluten allergy must exclude malt beer, got %d", got.Score)
	}
}

func TestEngineNonPositiveScoreDrops(t *testing.T) {
	engine := newTestEngine(t)
	drink := domain.Drink{ID: "z", Name: "Zero", Category: domain.CategoryWine, FlavorProfile: []string{"bitter"}}
	prefs := domain.Preferences{Category: "any", Flavor: "sweet"}
	if got := engine.ScoreDrink(drink, prefs, nil, 0); got != nil {
		t.Fatalf("a drink matching nothing should be dropped, got %d", got.Score)
	}
}

func TestEngineRuleWeights(t *testing.T) {
	cases := []struct {
		name    string
		drink   domain.Drink
		prefs   domain.Preferences
		weather *domain.WeatherReading
		likes   int
		clock   time.Time
		want    int
	}{
		{
			name:  "flavor synonym",
			drink: domain.Drink{Category: domain.CategoryBeer, FlavorProfile: []string{"refreshing"}},
			prefs: domain.Preferences{Category: "any", Flavor: "crisp"},
			want:  25,
		},
		{
			name:  "strength derived from abv not label",
			drink: domain.Drink{Category: domain.CategoryBeer, ABV: 5, Strength: "strong"},
			prefs: domain.Preferences{Category: "any", Strength: "light"},
			want:  20,
		},
		{
			name:  "newly21 flag",
			drink: domain.Drink{Category: domain.CategoryCocktail, FunForTwentyOne: true},
			prefs: domain.Preferences{Category: "any", Occasion: "newly21"},
			want:  25,
		},
		{
			name:  "occasion tag",
			drink: domain.Drink{Category: domain.CategoryCocktail, Occasions: []string{"party"}},
			prefs: domain.Preferences{Category: "any", Occasion: "party"},
			want:  15,
		},
		{
			name:  "classic adventure style",
			drink: domain.Drink{Name: "Margarita", Category: domain.CategoryCocktail},
			prefs: domain.Preferences{Category: "any", AdventureStyle: "classic"},
			want:  15,
		},
		{
			name: "compound sweet party cocktail",
			drink: domain.Drink{
				Category:      domain.CategoryCocktail,
				FlavorProfile: []string{"sweet"},
				Occasions:     []string{"party"},
			},
			prefs: domain.Preferences{Category: "any", Flavor: "sweet", Occasion: "party"},
			want:  50, // flavor 25 + occasion 15 + compound 10
		},
		{
			name: "temperature band",
			drink: domain.Drink{
				Category:     domain.CategoryBeer,
				WeatherMatch: &domain.WeatherMatch{IdealTempC: 6, MinTempC: 0, MaxTempC: 20},
			},
			prefs: domain.Preferences{Category: "any", Temperature: "cold"},
			want:  10,
		},
		{
			name: "weather with rain synergy",
			drink: domain.Drink{
				Category: domain.CategorySpirit,
				ABV:      40,
				WeatherMatch: &domain.WeatherMatch{
					IdealTempC: 10, MinTempC: 0, MaxTempC: 15,
					Conditions: []string{"rain"},
				},
			},
			prefs:   domain.Preferences{Category: "any", UseWeather: true},
			weather: &domain.WeatherReading{TempC: 10, Condition: "rain"},
			want:    18, // base 10 + condition 5 + rain/spirit 3
		},
		{
			name:  "popularity capped at ten",
			drink: domain.Drink{Category: domain.CategoryBeer},
			prefs: domain.Preferences{Category: "any"},
			likes: 23,
			want:  10,
		},
		{
			name:  "happy hour active",
			drink: domain.Drink{Category: domain.CategoryCocktail, HappyHour: true},
			prefs: domain.Preferences{Category: "any"},
			clock: at(17, 0),
			want:  25,
		},
		{
			name:  "casual occasion stacks on happy hour",
			drink: domain.Drink{Category: domain.CategoryCocktail, HappyHour: true},
			prefs: domain.Preferences{Category: "any", Occasion: "casual"},
			clock: at(17, 0),
			want:  30,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := tc.clock
			if clock.IsZero() {
				clock = at(12, 0)
			}
			engine := newTestEngine(t, WithClock(func() time.Time { return clock }))
			got := engine.ScoreDrink(tc.drink, tc.prefs, tc.weather, tc.likes)
			if got == nil {
				t.Fatalf("drink unexpectedly excluded")
			}
			if got.Score != tc.want {
				t.Fatalf("score = %d, want %d (reasons %v)", got.Score, tc.want, got.Reasons)
			}
		})
	}
}

func TestEnginePerfectMatch(t *testing.T) {
	// Base: flavor 25 + category 20 + strength 20 + occasion 15 = 80,
	// exactly at the perfect-match threshold. The third draw decides the
	// perfect-match roll.
	rng := &seqRand{values: []float64{0.5, 0.5, 0.0}}
	safety, err := NewSafetyFilter("")
	if err != nil {
		t.Fatalf("NewSafetyFilter: %v", err)
	}
	engine := NewEngine(safety, WithRand(rng), WithClock(func() time.Time { return at(12, 0) }))

	drink := domain.Drink{
		ID:            "perfect",
		Name:          "Spritz",
		Category:      domain.CategoryCocktail,
		ABV:           10,
		FlavorProfile: []string{"sweet"},
		Occasions:     []string{"brunch"},
	}
	prefs := domain.Preferences{Category: "cocktail", Flavor: "sweet", Strength: "light", Occasion: "brunch"}

	got := engine.ScoreDrink(drink, prefs, nil, 0)
	if got == nil {
		t.Fatal("drink excluded")
	}
	if got.Score != 100 {
		t.Fatalf("perfect-match roll should pin score to 100, got %d", got.Score)
	}
}

func TestEngineScoreBounds(t *testing.T) {
	safety, err := NewSafetyFilter("")
	if err != nil {
		t.Fatalf("NewSafetyFilter: %v", err)
	}
	engine := NewEngine(safety,
		WithRand(rand.New(rand.NewSource(1))),
		WithClock(func() time.Time { return at(17, 30) }),
	)

	drink := domain.Drink{
		ID:            "max",
		Name:          "Old Fashioned",
		Category:      domain.CategoryCocktail,
		ABV:           32,
		FlavorProfile: []string{"sweet", "smokey"},
		Occasions:     []string{"party", "casual"},
		HappyHour:     true,
		Featured:      true,
	}
	prefs := domain.Preferences{
		Category:       "cocktail",
		Flavor:         "sweet",
		Strength:       "strong",
		Occasion:       "party",
		AdventureStyle: "classic",
	}

	for i := 0; i < 200; i++ {
		got := engine.ScoreDrink(drink, prefs, nil, 40)
		if got == nil {
			t.Fatal("drink excluded")
		}
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("score out of bounds: %d", got.Score)
		}
	}
}
