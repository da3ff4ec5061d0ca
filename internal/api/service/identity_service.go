package service

import (
	"errors"
	"fmt"
	"strings"

	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/pkg"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityService is the identity provider: it authenticates callers, issues
// tokens, and bootstraps the directory profile on first authentication.
type IdentityService struct {
	identityRepo  *repo.IdentityRepository
	profileRepo   *repo.ProfileRepository
	config        api.AppConfig
	logger        zerolog.Logger
	profileMapper mapper.ProfileMapper
}

func NewIdentityService() *IdentityService {
	return &IdentityService{
		identityRepo: repo.NewIdentityRepository(),
		profileRepo:  repo.NewProfileRepository(),
		config:       api.GetConfig(),
		logger:       api.Logger,
	}
}

func (slf *IdentityService) Register(registerDTO request.RegisterDTO) (*response.AuthResponseDTO, error) {
	exists, err := slf.identityRepo.ExistsByEmail(registerDTO.Email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if identity exists")
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("an account with this email %w", ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	identity := models.Identity{
		ID:       uuid.NewString(),
		Email:    registerDTO.Email,
		Password: string(hashedPassword),
		Actif:    true,
	}

	if err = slf.identityRepo.Create(&identity); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating identity")
		return nil, err
	}

	profile, err := slf.bootstrapProfile(identity, registerDTO.FullName)
	if err != nil {
		return nil, err
	}

	return slf.issueTokens(identity, profile)
}

func (slf *IdentityService) Login(loginDTO request.LoginDTO) (*response.AuthResponseDTO, error) {
	identity, err := slf.identityRepo.FindByEmail(loginDTO.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		slf.logger.Error().Err(err).Msg("Error finding identity by email")
		return nil, err
	}

	if !identity.Actif {
		return nil, errors.New("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(loginDTO.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	// First login through an externally-provisioned identity still gets a
	// directory entry.
	profile, err := slf.bootstrapProfile(identity, "")
	if err != nil {
		return nil, err
	}

	return slf.issueTokens(identity, profile)
}

func (slf *IdentityService) RefreshToken(refreshToken string) (*response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return nil, errors.New("invalid or expired refresh token")
	}

	identity, err := slf.identityRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %w", ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("userId", claims.UserID).Msg("Error finding identity by ID")
		return nil, err
	}

	if !identity.Actif {
		return nil, errors.New("account is inactive")
	}

	if identity.RefreshToken != refreshToken {
		slf.logger.Warn().Str("userId", identity.ID).Msg("Refresh token mismatch")
		return nil, errors.New("invalid refresh token")
	}

	profile, err := slf.profileRepo.FindByID(identity.ID)
	if err != nil {
		slf.logger.Error().Err(err).Str("userId", identity.ID).Msg("Error finding profile")
		return nil, err
	}

	return slf.issueTokens(identity, profile)
}

// bootstrapProfile creates the directory entry exactly once per identity.
// Role is computed here and never re-derived: admin if the email is on the
// configured allowlist, user otherwise. The insert is ON CONFLICT DO NOTHING
// on the identity primary key, so two concurrent first logins cannot create
// two profiles.
func (slf *IdentityService) bootstrapProfile(identity models.Identity, fullName string) (models.Profile, error) {
	role := models.RoleUser
	for _, admin := range slf.config.AdminEmails {
		if strings.EqualFold(admin, identity.Email) {
			role = models.RoleAdmin
			break
		}
	}

	profile := models.Profile{
		ID:       identity.ID,
		Email:    identity.Email,
		FullName: fullName,
		Role:     role,
	}
	if err := slf.profileRepo.CreateIfAbsent(&profile); err != nil {
		slf.logger.Error().Err(err).Str("userId", identity.ID).Msg("Error bootstrapping profile")
		return models.Profile{}, err
	}

	// Re-read: if the insert was a no-op the existing row wins, including
	// its original role.
	existing, err := slf.profileRepo.FindByID(identity.ID)
	if err != nil {
		slf.logger.Error().Err(err).Str("userId", identity.ID).Msg("Error reading bootstrapped profile")
		return models.Profile{}, err
	}
	return existing, nil
}

func (slf *IdentityService) issueTokens(identity models.Identity, profile models.Profile) (*response.AuthResponseDTO, error) {
	token, err := pkg.GenerateToken(identity.ID, identity.Email, string(profile.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return nil, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(identity.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return nil, err
	}

	identity.RefreshToken = refreshToken
	if err = slf.identityRepo.Update(&identity); err != nil {
		slf.logger.Error().Err(err).Msg("Error storing refresh token")
		return nil, err
	}

	slf.logger.Info().Str("userId", identity.ID).Msg("Tokens issued")
	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		User:         slf.profileMapper.EntityToProfileResponse(profile),
	}, nil
}
