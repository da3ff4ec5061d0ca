package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

func ToCommentResponse(c models.Comment) response.Comment {
	return response.Comment{
		ID:        c.ID,
		FileID:    c.FileID,
		UserID:    c.UserID,
		Comment:   c.Comment,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCommentResponses(comments []models.Comment) []response.Comment {
	out := make([]response.Comment, len(comments))
	for i, c := range comments {
		out[i] = ToCommentResponse(c)
	}
	return out
}
