package auth

import (
	"strings"

	"photoportal/internal/models"
)

// GeneralSuffix marks an identifier as belonging to a general viewer.
// The match is case-sensitive.
const GeneralSuffix = "@gmail.com"

// RoleOf classifies an identifier: anything ending in GeneralSuffix is a
// general viewer, everything else is an admin. No credentials are checked.
func RoleOf(user string) models.Role {
	if strings.HasSuffix(user, GeneralSuffix) {
		return models.RoleGeneral
	}
	return models.RoleAdmin
}
