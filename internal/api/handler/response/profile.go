package response

type ProfileResponseDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type AuthResponseDTO struct {
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken"`
	User         ProfileResponseDTO `json:"user"`
}
