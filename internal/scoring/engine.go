package scoring

import (
	"math"
	"math/rand"
	"time"

	"drinkjoy/backend/internal/domain"
)

// Rand is the random source injected into the engine so tests can pin the
// shuffle and perturbation behaviour.
type Rand interface {
	Float64() float64
}

// Strategy is the common shape of the wizard-side engine and the chat-side
// classifier. The two are tuned independently and must not be assumed
// interchangeable.
type Strategy interface {
	ScoreDrink(drink domain.Drink, prefs domain.Preferences, weather *domain.WeatherReading, likes int) *domain.ScoredCandidate
}

const (
	perfectMatchThreshold   = 80
	perfectMatchScore       = 100
	perfectMatchProbability = 0.15
	boostProbability        = 0.10
	boostMax                = 10.0
	jitterRange             = 3.0
)

// Engine is the primary wizard-side scorer. It is safe for concurrent use
// only when each goroutine holds its own Engine (the random source is not
// synchronised); construct one per request or guard externally.
type Engine struct {
	safety *SafetyFilter
	rng    Rand
	now    func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithRand injects a deterministic random source.
func WithRand(rng Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock injects the time source consulted for happy-hour windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine constructs the primary engine around the given safety filter.
func NewEngine(safety *SafetyFilter, opts ...Option) *Engine {
	e := &Engine{
		safety: safety,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreDrink scores one drink against the preferences. A nil result means
// the drink is excluded: allergy-unsafe, category mismatch, or a
// non-positive additive score. Exclusion is the expected outcome for most
// of the catalog on a typical query, so it is a sentinel, not an error.
func (e *Engine) ScoreDrink(drink domain.Drink, prefs domain.Preferences, weather *domain.WeatherReading, likes int) *domain.ScoredCandidate {
	if !e.safety.IsSafe(drink, prefs.Allergies) {
		return nil
	}
	matched, excluded := categoryFilter(drink, prefs.Category)
	if excluded {
		return nil
	}

	in := ruleInput{
		drink:           drink,
		prefs:           prefs,
		weather:         weather,
		likes:           likes,
		now:             e.now(),
		categoryMatched: matched,
	}

	total := 0
	var reasons []string
	for _, rule := range primaryRules() {
		points, reason := rule.eval(in)
		if points == 0 {
			continue
		}
		total += points
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	if total <= 0 {
		return nil
	}

	score := e.perturb(total)
	return &domain.ScoredCandidate{Drink: drink, Score: score, Reasons: reasons}
}

// perturb applies the randomized variance: uniform jitter in [-3, +3], a 10%
// chance of a boost in [0, 10), and for pre-perturbation scores of 80+ a 15%
// chance of a perfect-match score of exactly 100. Clamped to [0, 100] and
// rounded to the nearest integer.
func (e *Engine) perturb(base int) int {
	score := float64(base) + (e.rng.Float64()*2*jitterRange - jitterRange)
	if e.rng.Float64() < boostProbability {
		score += e.rng.Float64() * boostMax
	}
	if base >= perfectMatchThreshold && e.rng.Float64() < perfectMatchProbability {
		return perfectMatchScore
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// categoryFilter applies the hard category rule. It returns whether the
// category positively matched (feeding the category points) and whether the
// drink must be excluded.
func categoryFilter(drink domain.Drink, requested string) (matched, excluded bool) {
	want := normalizeTerm(requested)
	if want == "" || want == domain.FilterAny {
		return false, false
	}
	if want == domain.FilterFeatured {
		if drink.Featured {
			return true, false
		}
		return false, true
	}
	if string(drink.Category) == want {
		return true, false
	}
	return false, true
}
