package policy

import (
	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/models"
)

type Action string

const (
	ListAllInsights Action = "insight:list-all"
	ViewInsight     Action = "insight:view"
	CreateAlert     Action = "alert:create"
	ViewAllStats    Action = "stats:view-all"
)

// Principal is the authenticated caller as carried in the access token.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

// Resource describes what an action targets. OwnerID is empty for
// collection-level actions.
type Resource struct {
	OwnerID string
}

var (
	privilegedReaders = roleSet(models.RoleAdmin, models.RoleManager, models.RoleExecutive)
	alertCreators     = roleSet(models.RoleAdmin, models.RoleManager)
)

// IsPrivilegedReader reports whether the role may read every user's data.
func (p Principal) IsPrivilegedReader() bool {
	return privilegedReaders[p.Role]
}

// Authorize returns nil when p may perform action on r, otherwise a
// Forbidden error.
func Authorize(p Principal, action Action, r Resource) error {
	switch action {
	case ListAllInsights, ViewAllStats:
		if p.IsPrivilegedReader() {
			return nil
		}
	case ViewInsight:
		if p.IsPrivilegedReader() || (r.OwnerID != "" && r.OwnerID == p.UserID) {
			return nil
		}
	case CreateAlert:
		if alertCreators[p.Role] {
			return nil
		}
	}
	return apperr.Forbidden(deniedMessage(action))
}

func deniedMessage(action Action) string {
	switch action {
	case ViewInsight:
		return "Access denied"
	case CreateAlert:
		return "Insufficient permissions to create alerts"
	}
	return "Forbidden - Insufficient permissions"
}

// Can is Authorize as a boolean.
func Can(p Principal, action Action, r Resource) bool {
	return Authorize(p, action, r) == nil
}

func roleSet(roles ...models.Role) map[models.Role]bool {
	m := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return m
}
