package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"drinkjoy/backend/internal/domain"
)

func writeDrinks(t *testing.T, drinks []domain.Drink) string {
	t.Helper()
	data, err := json.Marshal(drinks)
	if err != nil {
		t.Fatalf("marshal drinks: %v", err)
	}
	path := filepath.Join(t.TempDir(), "drinks.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write drinks file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeDrinks(t, []domain.Drink{
		{ID: "mojito", Name: "Mojito", Category: domain.CategoryCocktail, ABV: 12},
		{ID: "riesling", Name: "Riesling", Category: domain.CategoryWine, ABV: 11},
	})

	drinks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(drinks) != 2 {
		t.Fatalf("expected 2 drinks, got %d", len(drinks))
	}
	if drinks[0].ID != "mojito" {
		t.Fatalf("expected mojito first, got %s", drinks[0].ID)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	cases := []struct {
		name  string
		drink domain.Drink
	}{
		{"missing id", domain.Drink{Name: "No ID", Category: domain.CategoryBeer}},
		{"missing name", domain.Drink{ID: "x", Category: domain.CategoryBeer}},
		{"unknown category", domain.Drink{ID: "x", Name: "X", Category: "mead"}},
		{"negative abv", domain.Drink{ID: "x", Name: "X", Category: domain.CategoryBeer, ABV: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDrinks(t, []domain.Drink{tc.drink})
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
