package repo

import (
	"time"

	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	Db *gorm.DB
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{Db: api.DB}
}

func (slf *ActivityRepository) Create(event *models.ActivityEvent) error {
	return slf.Db.Create(event).Error
}

type ActionCount struct {
	Action models.ActivityAction `json:"action"`
	Count  int64                 `json:"count"`
}

type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// CountByAction aggregates events per action since the given instant.
func (slf *ActivityRepository) CountByAction(since time.Time) ([]ActionCount, error) {
	var counts []ActionCount
	err := slf.Db.Model(&models.ActivityEvent{}).
		Select("action, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("action").
		Scan(&counts).Error
	return counts, err
}

// CountByDay aggregates events per day since the given instant.
func (slf *ActivityRepository) CountByDay(since time.Time) ([]DayCount, error) {
	var counts []DayCount
	err := slf.Db.Model(&models.ActivityEvent{}).
		Select("date_trunc('day', created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day").
		Scan(&counts).Error
	return counts, err
}

func (slf *ActivityRepository) CountByUser(since time.Time, limit int) (map[string]int64, error) {
	type row struct {
		UserID string
		Count  int64
	}
	var rows []row
	err := slf.Db.Model(&models.ActivityEvent{}).
		Select("user_id, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("user_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Count
	}
	return out, nil
}
