package scoring

import (
	"testing"
	"time"

	"drinkjoy/backend/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func TestHappyHourActive(t *testing.T) {
	flagged := domain.Drink{
		ID:              "special",
		HappyHour:       true,
		HappyHourWindow: &domain.HappyHourWindow{Start: "15:00", End: "18:00"},
	}
	unflagged := domain.Drink{ID: "regular"}
	defaulted := domain.Drink{ID: "defaulted", HappyHour: true}
	lateNight := domain.Drink{
		ID:              "late",
		HappyHour:       true,
		HappyHourWindow: &domain.HappyHourWindow{Start: "22:00", End: "02:00"},
	}
	broken := domain.Drink{
		ID:              "broken",
		HappyHour:       true,
		HappyHourWindow: &domain.HappyHourWindow{Start: "soon", End: "later"},
	}

	tests := []struct {
		name   string
		drink  domain.Drink
		now    time.Time
		active bool
	}{
		{"inside window", flagged, at(16, 30), true},
		{"at window start", flagged, at(15, 0), true},
		{"at window end", flagged, at(18, 0), false},
		{"before window", flagged, at(14, 59), false},
		{"not flagged", unflagged, at(16, 30), false},
		{"default window applies", defaulted, at(17, 0), true},
		{"default window closed", defaulted, at(12, 0), false},
		{"midnight crossing late side", lateNight, at(23, 30), true},
		{"midnight crossing early side", lateNight, at(1, 15), true},
		{"midnight crossing closed", lateNight, at(12, 0), false},
		{"malformed window never active", broken, at(16, 30), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HappyHourActive(tc.drink, tc.now); got != tc.active {
				t.Fatalf("expected active=%v got %v", tc.active, got)
			}
		})
	}
}

func TestHappyHourScore(t *testing.T) {
	drink := domain.Drink{ID: "special", HappyHour: true}
	if got := HappyHourScore(drink, at(17, 0)); got != happyHourBonus {
		t.Fatalf("expected %d got %d", happyHourBonus, got)
	}
	if got := HappyHourScore(drink, at(9, 0)); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}
