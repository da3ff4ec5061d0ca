package request

type UpdateFile struct {
	IsPresentation *bool `json:"isPresentation" validate:"required"`
}
