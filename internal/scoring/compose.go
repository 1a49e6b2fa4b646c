package scoring

import (
	"sort"
	"time"

	"drinkjoy/backend/internal/domain"
)

const defaultLimit = 10

// Compose runs the engine over the whole catalog and assembles the ranked
// recommendation list: candidates are bucketed by score range of width 10,
// shuffled within each bucket, happy-hour drinks floated to the front of
// their bucket, buckets concatenated high to low, and finally 90+ scores
// re-asserted ahead of everything below 90 before truncating to limit.
func (e *Engine) Compose(catalog []domain.Drink, prefs domain.Preferences, weather *domain.WeatherReading, popularity map[string]int, limit int) []domain.ScoredCandidate {
	if limit <= 0 {
		limit = defaultLimit
	}

	var candidates []domain.ScoredCandidate
	for _, drink := range catalog {
		if scored := e.ScoreDrink(drink, prefs, weather, popularity[drink.ID]); scored != nil {
			candidates = append(candidates, *scored)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Bucket by score range: [90,100] -> 9/10, [80,89] -> 8, and so on.
	buckets := make(map[int][]domain.ScoredCandidate)
	var order []int
	for _, c := range candidates {
		key := c.Score / 10
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	now := e.now()
	result := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, key := range order {
		bucket := buckets[key]
		e.shuffle(bucket)
		frontLoadHappyHour(bucket, now)
		result = append(result, bucket...)
	}

	// Belt and suspenders: exceptional matches must never trail sub-90
	// scores, regardless of what the shuffle produced.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score >= 90 && result[j].Score < 90
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// shuffle is a Fisher-Yates pass driven by the injected random source.
func (e *Engine) shuffle(candidates []domain.ScoredCandidate) {
	for i := len(candidates) - 1; i > 0; i-- {
		j := int(e.rng.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
}

// frontLoadHappyHour stably moves currently happy-hour-active drinks to the
// front of the bucket, preserving the shuffled order otherwise. A no-op when
// no drink in the bucket is on happy hour.
func frontLoadHappyHour(bucket []domain.ScoredCandidate, now time.Time) {
	any := false
	for _, c := range bucket {
		if HappyHourActive(c.Drink, now) {
			any = true
			break
		}
	}
	if !any {
		return
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return HappyHourActive(bucket[i].Drink, now) && !HappyHourActive(bucket[j].Drink, now)
	})
}
