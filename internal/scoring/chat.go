package scoring

import (
	"fmt"
	"sort"

	"drinkjoy/backend/internal/domain"
)

// Chat-side weights and tier thresholds. Deliberately a separate tuning
// from the primary engine: conversation wants coarse tiers, the wizard
// wants fine-grained ranking. Do not merge the two.
const (
	chatCategoryWeight   = 30
	chatFlavorWeight     = 25
	chatStrengthWeight   = 20
	chatOccasionWeight   = 15
	chatAllergyWeight    = 50
	chatPerfectThreshold = 60
	chatGoodThreshold    = 30
	chatOtherThreshold   = 10
	chatTierCap          = 5
	chatFallbackScore    = 25
	chatFallbackMinimum  = 3
)

// ChatMatches partitions the catalog into quality tiers for a
// conversational reply.
type ChatMatches struct {
	Perfect []domain.ScoredCandidate `json:"perfect_matches"`
	Good    []domain.ScoredCandidate `json:"good_matches"`
	Other   []domain.ScoredCandidate `json:"other_matches"`
}

// Total returns the combined number of matches across tiers.
func (m ChatMatches) Total() int {
	return len(m.Perfect) + len(m.Good) + len(m.Other)
}

// ChatClassifier ranks catalog drinks for the conversational endpoint. It
// shares the Strategy shape with Engine but carries its own weights and
// absolute tier thresholds.
type ChatClassifier struct {
	safety *SafetyFilter
}

// NewChatClassifier builds the chat-side classifier.
func NewChatClassifier(safety *SafetyFilter) *ChatClassifier {
	return &ChatClassifier{safety: safety}
}

// ScoreDrink scores one drink with the chat weight set. Nil means the drink
// is allergy-incompatible or scored below the lowest tier.
func (c *ChatClassifier) ScoreDrink(drink domain.Drink, prefs domain.Preferences, _ *domain.WeatherReading, _ int) *domain.ScoredCandidate {
	if !c.safety.IsSafe(drink, prefs.Allergies) {
		return nil
	}

	score := 0
	var reasons []string

	if want := normalizeTerm(prefs.Category); want != "" && want != domain.FilterAny {
		if string(drink.Category) == want {
			score += chatCategoryWeight
			reasons = append(reasons, fmt.Sprintf("it's a %s", drink.Category))
		} else {
			score -= chatCategoryWeight
		}
	}
	if points, _ := flavorRule(ruleInput{drink: drink, prefs: prefs}); points > 0 {
		score += chatFlavorWeight
		reasons = append(reasons, fmt.Sprintf("%s flavor", normalizeTerm(prefs.Flavor)))
	}
	if want := normalizeTerm(prefs.Strength); want != "" && normalizeTerm(drink.Strength) == want {
		score += chatStrengthWeight
		reasons = append(reasons, fmt.Sprintf("%s strength", want))
	}
	if want := normalizeTerm(prefs.Occasion); want != "" {
		for _, tag := range drink.Occasions {
			if normalizeTerm(tag) == want {
				score += chatOccasionWeight
				reasons = append(reasons, fmt.Sprintf("good for %s", want))
				break
			}
		}
	}
	// Compatibility bonus: the drink survived every declared allergy. Only
	// amplifies drinks with at least one positive signal, so off-category
	// drinks don't ride the bonus into a tier.
	if declared(prefs.Allergies) && score > 0 {
		score += chatAllergyWeight
		reasons = append(reasons, "safe for your restrictions")
	}

	if score < chatOtherThreshold {
		return nil
	}
	return &domain.ScoredCandidate{Drink: drink, Score: score, Reasons: reasons}
}

// Classify scores every drink and partitions results into perfect, good and
// other tiers, each capped at five. When fewer than three matches are found
// for the known-hard beer + gluten-free request, gluten-free non-alcoholic
// and cocktail drinks are substituted as alternatives.
func (c *ChatClassifier) Classify(catalog []domain.Drink, prefs domain.Preferences) ChatMatches {
	var matches ChatMatches
	for _, drink := range catalog {
		scored := c.ScoreDrink(drink, prefs, nil, 0)
		if scored == nil {
			continue
		}
		switch {
		case scored.Score >= chatPerfectThreshold:
			matches.Perfect = append(matches.Perfect, *scored)
		case scored.Score >= chatGoodThreshold:
			matches.Good = append(matches.Good, *scored)
		default:
			matches.Other = append(matches.Other, *scored)
		}
	}

	sortTier(matches.Perfect)
	sortTier(matches.Good)
	sortTier(matches.Other)
	matches.Perfect = capTier(matches.Perfect)
	matches.Good = capTier(matches.Good)
	matches.Other = capTier(matches.Other)

	if matches.Total() < chatFallbackMinimum {
		seen := make(map[string]struct{}, matches.Total())
		for _, tier := range [][]domain.ScoredCandidate{matches.Perfect, matches.Good, matches.Other} {
			for _, m := range tier {
				seen[m.Drink.ID] = struct{}{}
			}
		}
		matches.Other = append(matches.Other, c.glutenFreeFallback(catalog, prefs, seen)...)
		matches.Other = capTier(matches.Other)
	}
	return matches
}

// glutenFreeFallback handles the beer + gluten-free dead end: suggest
// non-alcoholic or cocktail drinks whose ingredients avoid the gluten
// lexicon entirely.
func (c *ChatClassifier) glutenFreeFallback(catalog []domain.Drink, prefs domain.Preferences, seen map[string]struct{}) []domain.ScoredCandidate {
	if normalizeTerm(prefs.Category) != string(domain.CategoryBeer) || !hasAllergy(prefs.Allergies, "gluten") {
		return nil
	}
	var out []domain.ScoredCandidate
	for _, drink := range catalog {
		if _, dup := seen[drink.ID]; dup {
			continue
		}
		if drink.Category != domain.CategoryNonAlcoholic && drink.Category != domain.CategoryCocktail {
			continue
		}
		if c.safety.ContainsAny(drink, "gluten") {
			continue
		}
		if !c.safety.IsSafe(drink, prefs.Allergies) {
			continue
		}
		out = append(out, domain.ScoredCandidate{
			Drink:   drink,
			Score:   chatFallbackScore,
			Reasons: []string{"gluten-free alternative"},
		})
	}
	return out
}

func sortTier(tier []domain.ScoredCandidate) {
	sort.SliceStable(tier, func(i, j int) bool { return tier[i].Score > tier[j].Score })
}

func capTier(tier []domain.ScoredCandidate) []domain.ScoredCandidate {
	if len(tier) > chatTierCap {
		return tier[:chatTierCap]
	}
	return tier
}

func declared(allergies []string) bool {
	for _, a := range allergies {
		if key := normalizeTerm(a); key != "" && key != domain.AllergyNone {
			return true
		}
	}
	return false
}

func hasAllergy(allergies []string, name string) bool {
	for _, a := range allergies {
		if normalizeTerm(a) == name {
			return true
		}
	}
	return false
}
