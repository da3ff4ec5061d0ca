package request

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UpdateProfile struct {
	FullName string `json:"fullName" validate:"required"`
}

type UpdateRole struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}
