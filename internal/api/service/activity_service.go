package service

import (
	"strconv"
	"time"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"
	"api/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const statsCacheTTL = 5 * time.Minute

type ActivityService struct {
	activityRepo *repo.ActivityRepository
	logger       zerolog.Logger
}

func NewActivityService() *ActivityService {
	return &ActivityService{
		activityRepo: repo.NewActivityRepository(),
		logger:       api.Logger,
	}
}

// Record writes one audit row. Best effort: a failed audit write never fails
// the operation that triggered it.
func (slf *ActivityService) Record(userID string, action models.ActivityAction, resourceType string, resourceID string) {
	event := models.ActivityEvent{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if err := slf.activityRepo.Create(&event); err != nil {
		slf.logger.Error().Err(err).Str("action", string(action)).Msg("Error recording activity event")
	}
}

type ActivityStats struct {
	Since    time.Time          `json:"since"`
	ByAction []repo.ActionCount `json:"byAction"`
	ByDay    []repo.DayCount    `json:"byDay"`
	TopUsers map[string]int64   `json:"topUsers"`
}

// Stats aggregates real event rows over the given window. The result is
// cached in redis for a few minutes since the dashboard polls it.
func (slf *ActivityService) Stats(caller policy.Caller, days int) (*ActivityStats, error) {
	if !caller.Authenticated() {
		return nil, policy.ErrUnauthenticated
	}
	if days <= 0 {
		days = 30
	}

	cacheKey := "activity:stats:" + strconv.Itoa(days)
	var cached ActivityStats
	if err := pkg.RedisGet(cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Msg("Activity cache read failed, querying database")
	}

	since := time.Now().AddDate(0, 0, -days)

	byAction, err := slf.activityRepo.CountByAction(since)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error aggregating activity by action")
		return nil, err
	}
	byDay, err := slf.activityRepo.CountByDay(since)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error aggregating activity by day")
		return nil, err
	}
	topUsers, err := slf.activityRepo.CountByUser(since, 10)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error aggregating activity by user")
		return nil, err
	}

	stats := &ActivityStats{
		Since:    since,
		ByAction: byAction,
		ByDay:    byDay,
		TopUsers: topUsers,
	}

	if err := pkg.RedisSet(cacheKey, stats, statsCacheTTL); err != nil {
		slf.logger.Warn().Err(err).Msg("Activity cache write failed")
	}
	return stats, nil
}
