package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertDrink inserts or updates a catalog drink by ID.
func (d *Database) UpsertDrink(rec *DrinkRecord) error {
	if rec == nil {
		return errors.New("drink is nil")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("drink id required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "strength", "abv",
			"flavor_profile_json", "ingredients_json", "occasions_json",
			"weather_match_json", "featured", "happy_hour",
			"happy_hour_window_json", "happy_hour_price",
			"fun_for_twenty_one", "good_for_b_day", "preparation", "updated_at",
		}),
	}).Create(rec).Error
}

// ReplaceCatalog atomically swaps the stored catalog with the provided set.
func (d *Database) ReplaceCatalog(records []DrinkRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&DrinkRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		// Batch insert to avoid SQLite variable limit (999)
		const batchSize = 50
		return tx.CreateInBatches(records, batchSize).Error
	})
}

// GetDrink fetches one catalog drink by ID.
func (d *Database) GetDrink(id string) (*DrinkRecord, error) {
	var rec DrinkRecord
	if err := d.gorm.First(&rec, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteDrink removes a drink and its likes.
func (d *Database) DeleteDrink(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("drink id required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("drink_id = ?", id).Delete(&DrinkLike{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&DrinkRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListDrinks returns a paged slice of the catalog, optionally filtered by
// category, ordered by name.
func (d *Database) ListDrinks(category string, offset, limit int) ([]DrinkRecord, int64, error) {
	base := d.gorm.Model(&DrinkRecord{})
	if c := strings.TrimSpace(strings.ToLower(category)); c != "" {
		base = base.Where("category = ?", c)
	}
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query := base.Order("name ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []DrinkRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// AllDrinks returns the full catalog. Catalog sizes are in the hundreds, so
// loading it whole is fine.
func (d *Database) AllDrinks() ([]DrinkRecord, error) {
	var rows []DrinkRecord
	if err := d.gorm.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountDrinks returns the catalog size.
func (d *Database) CountDrinks() (int64, error) {
	var count int64
	if err := d.gorm.Model(&DrinkRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
