package access

import (
	"errors"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"

	"gorm.io/gorm"
)

// CapabilityWildcard grants every route. Only the admin role carries it, but
// it flows through the same resolution path as any other capability.
const CapabilityWildcard = "*"

// CapabilitySet is a role's built-in set of route capabilities.
type CapabilitySet map[string]bool

func (s CapabilitySet) Allows(route string) bool {
	return s[CapabilityWildcard] || s[route]
}

// RoleCapabilities returns the routes a role can use without an explicit
// grant. Manager is a small hand-curated set; everything else goes through
// UserPermission records.
func RoleCapabilities(role models.UserRole) CapabilitySet {
	switch role {
	case models.RoleAdmin:
		return CapabilitySet{CapabilityWildcard: true}
	case models.RoleManager:
		return CapabilitySet{
			"sales-orders.delete":      true,
			"purchase-indents.delete":  true,
			"purchase-orders.delete":   true,
			"purchase-indents.approve": true,
			"sales-orders.dispatch":    true,
			"skus.adjust-stock":        true,
		}
	default:
		return CapabilitySet{}
	}
}

// Decide applies the grant rules to already-loaded records: a missing catalog
// entry or missing grant denies; an explicit revoke denies even if an older
// grant said yes.
func Decide(caps CapabilitySet, route string, perm *models.Permission, grant *models.UserPermission) bool {
	if caps.Allows(route) {
		return true
	}
	if perm == nil || grant == nil {
		return false
	}
	return grant.Granted && grant.RevokedAt == nil
}

// HasPermission resolves whether the user may use the named route. One code
// path for every role: the role's capability set first, then the latest
// UserPermission record.
func HasPermission(userID uint, role models.UserRole, route string) (bool, error) {
	caps := RoleCapabilities(role)
	if caps.Allows(route) {
		return true, nil
	}

	var perm models.Permission
	err := database.DB.Where("route = ?", route).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var grant models.UserPermission
	err = database.DB.
		Where("user_id = ? AND permission_id = ?", userID, perm.ID).
		Order("id DESC").
		First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return Decide(caps, route, &perm, &grant), nil
}
