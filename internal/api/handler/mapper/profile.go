package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// ProfileMapper converts directory entities to responses. Implemented
// manually; the shapes are too small to be worth generating.
type ProfileMapper struct{}

func (ProfileMapper) EntityToProfileResponse(p models.Profile) response.ProfileResponseDTO {
	return response.ProfileResponseDTO{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     string(p.Role),
	}
}

func (m ProfileMapper) EntitiesToProfileResponses(profiles []models.Profile) []response.ProfileResponseDTO {
	out := make([]response.ProfileResponseDTO, len(profiles))
	for i, p := range profiles {
		out[i] = m.EntityToProfileResponse(p)
	}
	return out
}
