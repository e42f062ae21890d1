package session

import "github.com/opencrew/orgcli/internal/models"

// Explain is the pure role gate: it reports whether the role set contains at
// least one of the accepted roles and selects the matching justification
// text. It performs no network or store access; callers must re-evaluate it
// whenever the underlying session changes (organization switch, step-up).
func Explain(roles models.RoleSet, accepted []models.Role, authorizedText, forbiddenText string) (bool, string) {
	if roles.HasAny(accepted...) {
		return true, authorizedText
	}
	return false, forbiddenText
}
