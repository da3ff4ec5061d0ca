package request

type CreateComment struct {
	Comment  string  `json:"comment" validate:"required"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
}

type UpdateComment struct {
	Comment string `json:"comment" validate:"required"`
}
