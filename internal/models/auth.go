package models

type SessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
