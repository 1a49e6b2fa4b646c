package scoring

import (
	"fmt"
	"math"
	"sort"

	"drinkjoy/backend/internal/domain"
)

// Simplified weights for the supplementary pass. The cap sits below the
// primary engine's range so fill-in options never read as perfect matches.
const (
	additionalBase        = 15
	additionalFlavor      = 10
	additionalCategory    = 5
	additionalStrength    = 8
	additionalFeatured    = 5
	additionalHappyHour   = 10
	additionalLikesCap    = 5
	additionalFloor       = 15
	additionalCeil        = 65
	additionalMaxReasons  = 3
	additionalDefaultSize = 5
)

// AdditionalDrinks fills out a result set with more options in the same
// category, skipping anything already shown. Allergy safety is re-applied;
// it is never relaxed for supplementary results.
func (e *Engine) AdditionalDrinks(catalog []domain.Drink, prefs domain.Preferences, excludeIDs []string, popularity map[string]int, limit int) []domain.ScoredCandidate {
	return e.additional(catalog, prefs, excludeIDs, popularity, limit)
}

// AdditionalDrinksFromAllCategories widens the supplementary pass across
// every category while keeping the allergy filter intact.
func (e *Engine) AdditionalDrinksFromAllCategories(catalog []domain.Drink, prefs domain.Preferences, excludeIDs []string, popularity map[string]int, limit int) []domain.ScoredCandidate {
	opened := prefs
	opened.Category = domain.FilterAny
	return e.additional(catalog, opened, excludeIDs, popularity, limit)
}

func (e *Engine) additional(catalog []domain.Drink, prefs domain.Preferences, excludeIDs []string, popularity map[string]int, limit int) []domain.ScoredCandidate {
	if limit <= 0 {
		limit = additionalDefaultSize
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	now := e.now()
	var out []domain.ScoredCandidate
	for _, drink := range catalog {
		if _, seen := excluded[drink.ID]; seen {
			continue
		}
		if !e.safety.IsSafe(drink, prefs.Allergies) {
			continue
		}
		if _, drop := categoryFilter(drink, prefs.Category); drop {
			continue
		}

		score := additionalBase
		var reasons []string

		if points, _ := flavorRule(ruleInput{drink: drink, prefs: prefs}); points > 0 {
			score += additionalFlavor
			reasons = append(reasons, fmt.Sprintf("also %s", normalizeTerm(prefs.Flavor)))
		}
		if prefs.Category != "" && normalizeTerm(prefs.Category) == string(drink.Category) {
			score += additionalCategory
			reasons = append(reasons, fmt.Sprintf("another %s option", drink.Category))
		}
		if prefs.Strength != "" && normalizeTerm(drink.Strength) == normalizeTerm(prefs.Strength) {
			score += additionalStrength
			reasons = append(reasons, fmt.Sprintf("%s like you wanted", normalizeTerm(prefs.Strength)))
		}
		if drink.Featured {
			score += additionalFeatured
			reasons = append(reasons, "featured drink")
		}
		if HappyHourActive(drink, now) {
			score += additionalHappyHour
			reasons = append(reasons, "on happy hour special")
		}
		if likes := popularity[drink.ID] / 2; likes > 0 {
			if likes > additionalLikesCap {
				likes = additionalLikesCap
			}
			score += likes
			reasons = append(reasons, "popular with other guests")
		}

		// Small variance so repeated fill-ins differ, clamped to the
		// supplementary band.
		perturbed := float64(score) + (e.rng.Float64()*2*jitterRange - jitterRange)
		final := int(math.Round(perturbed))
		if final < additionalFloor {
			final = additionalFloor
		}
		if final > additionalCeil {
			final = additionalCeil
		}

		if len(reasons) > additionalMaxReasons {
			reasons = reasons[:additionalMaxReasons]
		}
		out = append(out, domain.ScoredCandidate{Drink: drink, Score: final, Reasons: reasons})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
