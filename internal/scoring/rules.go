package scoring

import (
	"fmt"
	"strings"
	"time"

	"drinkjoy/backend/internal/domain"
)

// Point weights for the primary engine. Kept in one block so the scoring
// table stays auditable instead of being scattered through conditionals.
const (
	flavorPoints          = 25
	categoryPoints        = 20
	strengthPoints        = 20
	adventurePoints       = 15
	compoundPoints        = 10
	occasionPoints        = 15
	occasionFlagPoints    = 25
	temperaturePoints     = 10
	weatherBasePoints     = 10
	weatherConditionBonus = 5
	weatherSynergyBonus   = 3
	weatherHumidityBonus  = 2
	casualHappyHourPoints = 5
	featuredExtraPoints   = 15
	popularityCap         = 10
)

// ruleInput carries everything a scoring rule may consult for one drink.
type ruleInput struct {
	drink           domain.Drink
	prefs           domain.Preferences
	weather         *domain.WeatherReading
	likes           int
	now             time.Time
	categoryMatched bool
}

// scoreRule is one additive contribution: it either returns points plus a
// reason string, or zero for no contribution.
type scoreRule struct {
	dimension string
	eval      func(in ruleInput) (int, string)
}

// primaryRules is the full weight table of the wizard-side engine, evaluated
// in order; contributions are independent and additive.
func primaryRules() []scoreRule {
	return []scoreRule{
		{dimension: "flavor", eval: flavorRule},
		{dimension: "category", eval: categoryRule},
		{dimension: "strength", eval: strengthRule},
		{dimension: "adventure", eval: adventureRule},
		{dimension: "compound", eval: compoundRule},
		{dimension: "occasion", eval: occasionRule},
		{dimension: "temperature", eval: temperatureRule},
		{dimension: "weather", eval: weatherRule},
		{dimension: "happy_hour", eval: happyHourRule},
		{dimension: "casual_happy_hour", eval: casualHappyHourRule},
		{dimension: "featured", eval: featuredRule},
		{dimension: "popularity", eval: popularityRule},
	}
}

// flavorSynonyms expands a requested flavor into the tags it may appear as
// on a drink's profile.
var flavorSynonyms = map[string][]string{
	"sweet":      {"sweet", "fruity", "dessert", "honeyed"},
	"sour":       {"sour", "tart", "citrus", "tangy"},
	"bitter":     {"bitter", "herbal", "hoppy", "dry"},
	"crisp":      {"crisp", "clean", "refreshing", "bright"},
	"smokey":     {"smokey", "smoky", "peaty", "oaky", "charred"},
	"spicy":      {"spicy", "peppery", "gingery", "warming"},
	"creamy":     {"creamy", "smooth", "velvety", "rich"},
	"refreshing": {"refreshing", "crisp", "light", "clean"},
}

func flavorRule(in ruleInput) (int, string) {
	want := normalizeTerm(in.prefs.Flavor)
	if want == "" {
		return 0, ""
	}
	synonyms, ok := flavorSynonyms[want]
	if !ok {
		synonyms = []string{want}
	}
	for _, tag := range in.drink.FlavorProfile {
		normalized := normalizeTerm(tag)
		for _, syn := range synonyms {
			if normalized == syn {
				return flavorPoints, fmt.Sprintf("matches your %s flavor preference", want)
			}
		}
	}
	return 0, ""
}

// categoryRule is only reachable when the category filter matched; a
// mismatch excludes the drink before scoring starts.
func categoryRule(in ruleInput) (int, string) {
	if !in.categoryMatched {
		return 0, ""
	}
	if normalizeTerm(in.prefs.Category) == domain.FilterFeatured {
		return categoryPoints, "featured pick"
	}
	return categoryPoints, fmt.Sprintf("exactly the %s you asked for", in.drink.Category)
}

// abvBand maps ABV to the strength band a caller can request. Derived from
// ABV, not from the drink's own strength label.
func abvBand(abv float64) string {
	switch {
	case abv <= 12:
		return "light"
	case abv <= 25:
		return "medium"
	default:
		return "strong"
	}
}

func strengthRule(in ruleInput) (int, string) {
	want := normalizeTerm(in.prefs.Strength)
	if want == "" {
		return 0, ""
	}
	if abvBand(in.drink.ABV) == want {
		return strengthPoints, fmt.Sprintf("%s strength, as requested", want)
	}
	return 0, ""
}

// classicNames are drinks the "classic" adventure style recognises.
var classicNames = map[string]struct{}{
	"old fashioned": {},
	"martini":       {},
	"manhattan":     {},
	"negroni":       {},
	"margarita":     {},
	"mojito":        {},
	"daiquiri":      {},
	"whiskey sour":  {},
	"gin and tonic": {},
	"moscow mule":   {},
}

func adventureRule(in ruleInput) (int, string) {
	switch normalizeTerm(in.prefs.AdventureStyle) {
	case "classic":
		if _, ok := classicNames[normalizeTerm(in.drink.Name)]; ok {
			return adventurePoints, "a timeless classic"
		}
	case "bold":
		if hasFlavor(in.drink, "bitter") || abvBand(in.drink.ABV) == "strong" {
			return adventurePoints, "bold choice for the adventurous"
		}
	case "fruity":
		if hasFlavor(in.drink, "sweet") {
			return adventurePoints, "fruity and easy to enjoy"
		}
	case "simple":
		if len(in.drink.Ingredients) <= 3 || in.drink.Category == domain.CategoryBeer || in.drink.Category == domain.CategoryWine {
			return adventurePoints, "simple and straightforward"
		}
	}
	return 0, ""
}

// compoundRule awards special-cased flavor+occasion+category combinations.
func compoundRule(in ruleInput) (int, string) {
	flavor := normalizeTerm(in.prefs.Flavor)
	occasion := normalizeTerm(in.prefs.Occasion)
	if flavor == "" || occasion == "" {
		return 0, ""
	}
	d := in.drink
	switch {
	case flavor == "sweet" && occasion == "party" &&
		d.Category == domain.CategoryCocktail && hasFlavor(d, "sweet"):
		return compoundPoints, "sweet cocktail made for a party"
	case flavor == "crisp" && occasion == "romantic" &&
		(d.Category == domain.CategoryWine || (d.Category == domain.CategorySpirit && abvBand(d.ABV) == "light")):
		return compoundPoints, "crisp and elegant for a romantic evening"
	case flavor == "smokey" && occasion == "business" &&
		d.Category == domain.CategorySpirit && namedWhiskey(d.Name):
		return compoundPoints, "a smokey pour that means business"
	case flavor == "sour" && occasion == "sports" &&
		(d.Category == domain.CategoryBeer || (hasFlavor(d, "sour") && abvBand(d.ABV) == "light")):
		return compoundPoints, "sour and sessionable for game day"
	}
	return 0, ""
}

func namedWhiskey(name string) bool {
	lower := normalizeTerm(name)
	for _, token := range []string{"whiskey", "whisky", "bourbon", "scotch"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func occasionRule(in ruleInput) (int, string) {
	occasion := normalizeTerm(in.prefs.Occasion)
	if occasion == "" {
		return 0, ""
	}
	// Milestone occasions check dedicated flags for a bigger bonus.
	switch occasion {
	case "newly21":
		if in.drink.FunForTwentyOne {
			return occasionFlagPoints, "a fun pick for your first legal round"
		}
		return 0, ""
	case "birthday":
		if in.drink.GoodForBDay {
			return occasionFlagPoints, "great for birthday celebrations"
		}
		return 0, ""
	}
	for _, tag := range in.drink.Occasions {
		if normalizeTerm(tag) == occasion {
			return occasionPoints, fmt.Sprintf("fits a %s occasion", occasion)
		}
	}
	return 0, ""
}

// temperatureBand buckets a drink's ideal serving temperature.
func temperatureBand(idealC float64) string {
	switch {
	case idealC <= 8:
		return "cold"
	case idealC <= 15:
		return "cool"
	case idealC <= 22:
		return "room"
	default:
		return "warm"
	}
}

func temperatureRule(in ruleInput) (int, string) {
	want := normalizeTerm(in.prefs.Temperature)
	if want == "" || in.drink.WeatherMatch == nil {
		return 0, ""
	}
	if temperatureBand(in.drink.WeatherMatch.IdealTempC) == want {
		return temperaturePoints, fmt.Sprintf("best served %s, just how you like it", want)
	}
	return 0, ""
}

func weatherRule(in ruleInput) (int, string) {
	if !in.prefs.UseWeather || in.weather == nil || in.drink.WeatherMatch == nil {
		return 0, ""
	}
	wm := in.drink.WeatherMatch
	w := in.weather
	points := 0
	if w.TempC >= wm.MinTempC && w.TempC <= wm.MaxTempC {
		points += weatherBasePoints
	}
	condition := normalizeTerm(w.Condition)
	for _, tag := range wm.Conditions {
		if normalizeTerm(tag) == condition {
			points += weatherConditionBonus
			break
		}
	}
	if condition == "rain" && in.drink.Category == domain.CategorySpirit {
		points += weatherSynergyBonus
	}
	if condition == "clear" && wm.IdealTempC >= 20 {
		points += weatherSynergyBonus
	}
	if (condition == "snow" || w.TempC < 5) && abvBand(in.drink.ABV) == "strong" {
		points += weatherSynergyBonus
	}
	if strings.Contains(strings.ToLower(w.Description), "humid") && abvBand(in.drink.ABV) == "light" {
		points += weatherHumidityBonus
	}
	if points == 0 {
		return 0, ""
	}
	return points, "suits today's weather"
}

func happyHourRule(in ruleInput) (int, string) {
	if points := HappyHourScore(in.drink, in.now); points > 0 {
		reason := "happy hour right now"
		if in.drink.HappyHourPrice != "" {
			reason = fmt.Sprintf("happy hour right now (%s)", in.drink.HappyHourPrice)
		}
		return points, reason
	}
	return 0, ""
}

func casualHappyHourRule(in ruleInput) (int, string) {
	if normalizeTerm(in.prefs.Occasion) != "casual" {
		return 0, ""
	}
	if HappyHourActive(in.drink, in.now) {
		return casualHappyHourPoints, "casual and on special"
	}
	return 0, ""
}

// featuredRule stacks on top of the category points when the caller asked
// specifically for featured drinks.
func featuredRule(in ruleInput) (int, string) {
	if normalizeTerm(in.prefs.Category) == domain.FilterFeatured && in.drink.Featured {
		return featuredExtraPoints, "one of our featured drinks"
	}
	return 0, ""
}

func popularityRule(in ruleInput) (int, string) {
	points := in.likes / 2
	if points > popularityCap {
		points = popularityCap
	}
	if points <= 0 {
		return 0, ""
	}
	switch {
	case in.likes >= 20:
		return points, "a crowd favorite"
	case in.likes >= 10:
		return points, "very popular with other guests"
	case in.likes >= 5:
		return points, "well liked by other guests"
	default:
		return points, "getting noticed"
	}
}

func hasFlavor(drink domain.Drink, flavor string) bool {
	for _, tag := range drink.FlavorProfile {
		if normalizeTerm(tag) == flavor {
			return true
		}
	}
	return false
}
