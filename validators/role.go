package validators

import (
	"errors"

	"hirehub/job-portal-api/internal/model"
)

var (
	ErrRoleEmpty   = errors.New("no role provided")
	ErrRoleInvalid = errors.New("role must be either student or recruiter")
)

func RoleValidator(r string) error {
	if r == "" {
		return ErrRoleEmpty
	}

	if !model.ValidRole(r) {
		return ErrRoleInvalid
	}

	return nil
}
