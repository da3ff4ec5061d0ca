package service

import (
	"errors"
	"fmt"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ProfileService struct {
	profileRepo *repo.ProfileRepository
	activity    *ActivityService
	logger      zerolog.Logger
}

func NewProfileService() *ProfileService {
	return &ProfileService{
		profileRepo: repo.NewProfileRepository(),
		activity:    NewActivityService(),
		logger:      api.Logger,
	}
}

func (slf *ProfileService) GetByID(caller policy.Caller, id string) (models.Profile, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableProfile, OwnerID: id}); err != nil {
		return models.Profile{}, err
	}

	profile, err := slf.profileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, fmt.Errorf("profile %w", ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("profileId", id).Msg("Error finding profile")
		return models.Profile{}, err
	}
	return profile, nil
}

func (slf *ProfileService) GetAll(caller policy.Caller) ([]models.Profile, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableProfile}); err != nil {
		return nil, err
	}
	profiles, err := slf.profileRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing profiles")
		return nil, err
	}
	return profiles, nil
}

// UpdateName changes the caller's own display name.
func (slf *ProfileService) UpdateName(caller policy.Caller, id string, fullName string) (models.Profile, error) {
	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableProfile, OwnerID: id}); err != nil {
		return models.Profile{}, err
	}

	if err := slf.profileRepo.UpdateName(id, fullName); err != nil {
		slf.logger.Error().Err(err).Str("profileId", id).Msg("Error updating profile name")
		return models.Profile{}, err
	}

	slf.activity.Record(caller.ID, models.ActionUpdated, "profile", id)
	return slf.profileRepo.FindByID(id)
}

// UpdateRole is the admin override: the only mutation a non-owner may make
// to a profile.
func (slf *ProfileService) UpdateRole(caller policy.Caller, id string, role models.AppRole) (models.Profile, error) {
	if !role.Valid() {
		return models.Profile{}, errors.New("invalid role")
	}

	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableProfile, OwnerID: id, RoleChange: true}); err != nil {
		return models.Profile{}, err
	}

	if _, err := slf.profileRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, fmt.Errorf("profile %w", ErrNotFound)
		}
		return models.Profile{}, err
	}

	if err := slf.profileRepo.UpdateRole(id, role); err != nil {
		slf.logger.Error().Err(err).Str("profileId", id).Msg("Error updating profile role")
		return models.Profile{}, err
	}

	slf.logger.Info().Str("profileId", id).Str("role", string(role)).Str("by", caller.ID).Msg("Profile role changed")
	slf.activity.Record(caller.ID, models.ActionUpdated, "profile", id)
	return slf.profileRepo.FindByID(id)
}
