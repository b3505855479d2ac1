package model

import "time"

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// Profile holds the optional profile fields a user fills in after
// registration. It's embedded into the users table
type Profile struct {
	Bio                string      `json:"bio"`
	Skills             StringSlice `json:"skills" gorm:"type:text"`
	ProfilePhoto       string      `json:"profilePhoto"`
	Resume             string      `json:"resume"`
	ResumeOriginalName string      `json:"resumeOriginalName"`
}

// User is the persisted account record. Emails are stored lower-cased
// so the unique index also catches case-variant duplicates. At most one
// verification token and one reset token exist per user, issuing a new
// one overwrites the previous value
type User struct {
	ID           string `gorm:"primaryKey"`
	FullName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PhoneNumber  string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`

	IsVerified        bool `gorm:"default:false"`
	VerificationToken *string

	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time

	Profile Profile `gorm:"embedded;embeddedPrefix:profile_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleRecruiter
}
