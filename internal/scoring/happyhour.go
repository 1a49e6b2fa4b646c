package scoring

import (
	"strconv"
	"strings"
	"time"

	"drinkjoy/backend/internal/domain"
)

const happyHourBonus = 25

// Window applied when a drink is flagged happy_hour without an explicit one.
var defaultHappyHourWindow = domain.HappyHourWindow{Start: "16:00", End: "19:00"}

// HappyHourActive reports whether the drink is flagged for happy hour and
// the supplied time falls inside its daily window.
func HappyHourActive(drink domain.Drink, now time.Time) bool {
	if !drink.HappyHour {
		return false
	}
	window := defaultHappyHourWindow
	if drink.HappyHourWindow != nil {
		window = *drink.HappyHourWindow
	}
	start, ok := minutesOfDay(window.Start)
	if !ok {
		return false
	}
	end, ok := minutesOfDay(window.End)
	if !ok {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	if start <= end {
		return current >= start && current < end
	}
	// Window crossing midnight.
	return current >= start || current < end
}

// HappyHourScore returns the flat bonus for a drink whose happy hour is
// currently active, zero otherwise.
func HappyHourScore(drink domain.Drink, now time.Time) int {
	if HappyHourActive(drink, now) {
		return happyHourBonus
	}
	return 0
}

func minutesOfDay(value string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
