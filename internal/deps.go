package internal

import (
	"hirehub/job-portal-api/internal/service"
	"hirehub/job-portal-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Tokens   *security.TokenService
	Mailer   service.Mailer
	Uploader service.Uploader // nil when storage is disabled
}
