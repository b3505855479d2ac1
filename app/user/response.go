// Package user contains the account lifecycle endpoints: registration,
// email verification, login, password reset and profile updates
package user

import "hirehub/job-portal-api/internal/model"

// sanitizedUser is the client-facing view of a user record. The
// password hash never leaves the server
type sanitizedUser struct {
	ID          string        `json:"id"`
	FullName    string        `json:"fullname"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Role        string        `json:"role"`
	Profile     model.Profile `json:"profile"`
}

func sanitize(u *model.User) sanitizedUser {
	return sanitizedUser{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Profile:     u.Profile,
	}
}
