package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"drinkjoy/backend/internal/domain"
)

// SafetyFilter decides whether a drink is compatible with a set of declared
// allergies or restrictions. A drink is unsafe as soon as any declared
// allergy matches any ingredient (or the drink name, for named-spirit
// restrictions). This check is a hard exclusion applied before any scoring.
type SafetyFilter struct {
	lexicon map[string][]string
	spirits map[string]struct{}
}

// NewSafetyFilter builds a filter from the compiled-in lexicon, optionally
// merged with a JSON override file mapping allergy name to disqualifying
// ingredient substrings. An empty path keeps the defaults.
func NewSafetyFilter(path string) (*SafetyFilter, error) {
	lexicon := defaultAllergenLexicon()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read allergen terms: %w", err)
		}
		var raw map[string][]string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal allergen terms: %w", err)
		}
		for allergy, terms := range raw {
			key := normalizeTerm(allergy)
			if key == "" {
				continue
			}
			var list []string
			for _, term := range terms {
				if normalized := normalizeTerm(term); normalized != "" {
					list = append(list, normalized)
				}
			}
			if len(list) > 0 {
				lexicon[key] = list
			}
		}
	}
	return &SafetyFilter{
		lexicon: lexicon,
		spirits: spiritRestrictions(),
	}, nil
}

// IsSafe reports whether the drink's ingredients (and, for named-spirit
// restrictions, the drink name) are free of every declared allergy.
// Unknown allergy labels match nothing: the filter fails open on labels
// outside the lexicon.
func (f *SafetyFilter) IsSafe(drink domain.Drink, allergies []string) bool {
	if f == nil || len(allergies) == 0 {
		return true
	}
	for _, allergy := range allergies {
		key := normalizeTerm(allergy)
		if key == "" || key == domain.AllergyNone {
			continue
		}
		if f.matches(drink, key) {
			return false
		}
	}
	return true
}

// Unsafe returns the declared allergies the drink violates, in input order.
func (f *SafetyFilter) Unsafe(drink domain.Drink, allergies []string) []string {
	if f == nil {
		return nil
	}
	var hits []string
	for _, allergy := range allergies {
		key := normalizeTerm(allergy)
		if key == "" || key == domain.AllergyNone {
			continue
		}
		if f.matches(drink, key) {
			hits = append(hits, key)
		}
	}
	return hits
}

func (f *SafetyFilter) matches(drink domain.Drink, allergy string) bool {
	terms, known := f.lexicon[allergy]
	if known {
		for _, term := range terms {
			for _, ingredient := range drink.Ingredients {
				if strings.Contains(normalizeTerm(ingredient), term) {
					return true
				}
			}
		}
	}
	if _, spirit := f.spirits[allergy]; spirit {
		if strings.Contains(normalizeTerm(drink.Name), allergy) {
			return true
		}
		for _, ingredient := range drink.Ingredients {
			if strings.Contains(normalizeTerm(ingredient), allergy) {
				return true
			}
		}
	}
	return false
}

// ContainsAny reports whether any ingredient contains one of the lexicon
// terms for the given allergy. Used by the chat-side fallback to find
// substitute drinks.
func (f *SafetyFilter) ContainsAny(drink domain.Drink, allergy string) bool {
	if f == nil {
		return false
	}
	return f.matches(drink, normalizeTerm(allergy))
}

// Validate ensures the filter carries a baseline lexicon.
func (f *SafetyFilter) Validate() error {
	if f == nil {
		return errors.New("safety filter is nil")
	}
	if len(f.lexicon) == 0 {
		return errors.New("allergen lexicon missing")
	}
	return nil
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func defaultAllergenLexicon() map[string][]string {
	return map[string][]string{
		"gluten":  {"beer", "wheat", "barley", "rye", "malt"},
		"dairy":   {"milk", "cream", "butter", "cheese", "yogurt", "whey", "casein", "lactose"},
		"eggs":    {"egg", "egg white", "aquafaba"},
		"nuts":    {"almond", "hazelnut", "walnut", "pecan", "cashew", "amaretto", "orgeat", "frangelico"},
		"soy":     {"soy", "tofu", "edamame"},
		"sulfite": {"wine", "vermouth", "sherry", "port"},
	}
}

// spiritRestrictions lists restrictions matched against ingredient names and
// the drink's own name rather than the ingredient lexicon.
func spiritRestrictions() map[string]struct{} {
	return map[string]struct{}{
		"gin":     {},
		"vodka":   {},
		"whiskey": {},
		"bourbon": {},
		"scotch":  {},
		"rum":     {},
		"tequila": {},
		"brandy":  {},
	}
}
