package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"drinkjoy/backend/internal/domain"
)

// LoadFile reads a drinks JSON file (an array of drinks) and validates each
// entry. Invalid rows abort the load; a seed file with bad data should be
// fixed, not silently trimmed.
func LoadFile(path string) ([]domain.Drink, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read drinks file: %w", err)
	}
	var drinks []domain.Drink
	if err := json.Unmarshal(data, &drinks); err != nil {
		return nil, fmt.Errorf("unmarshal drinks: %w", err)
	}
	for i, d := range drinks {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("drink %d (%s): %w", i, d.ID, err)
		}
	}
	return drinks, nil
}

func validate(d domain.Drink) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("missing id")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("missing name")
	}
	if !domain.ValidCategory(string(d.Category)) {
		return fmt.Errorf("unknown category %q", d.Category)
	}
	if d.ABV < 0 {
		return fmt.Errorf("negative abv %v", d.ABV)
	}
	return nil
}
