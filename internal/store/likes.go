package store

import (
	"errors"
	"fmt"
	"strings"
)

// AddLike records one like for the drink and returns its new total.
func (d *Database) AddLike(drinkID string) (int, error) {
	drinkID = strings.TrimSpace(drinkID)
	if drinkID == "" {
		return 0, errors.New("drink id required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(&DrinkLike{DrinkID: drinkID}).Error; err != nil {
		return 0, err
	}
	var total int64
	if err := d.gorm.Model(&DrinkLike{}).Where("drink_id = ?", drinkID).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// Likes returns the like count for one drink.
func (d *Database) Likes(drinkID string) (int, error) {
	var total int64
	if err := d.gorm.Model(&DrinkLike{}).Where("drink_id = ?", strings.TrimSpace(drinkID)).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// LikeCounts aggregates likes per drink. Absent drinks have zero likes.
func (d *Database) LikeCounts() (map[string]int, error) {
	var rows []LikeCount
	query := d.gorm.Table("drink_likes").
		Select("drink_id, COUNT(*) AS total").
		Group("drink_id")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("like counts: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DrinkID] = row.Total
	}
	return counts, nil
}
