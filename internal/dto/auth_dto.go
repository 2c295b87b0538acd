package dto

import "time"

type AuthUserDTO struct {
	Id              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageUrl string `json:"profileImageUrl"`
}

type AuthStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *AuthUserDTO `json:"user,omitempty"`
}

type UserResponse struct {
	AuthUserDTO
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GoogleUserInfo is the payload of the Google userinfo v2 endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
