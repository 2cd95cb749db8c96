package access

import (
	"testing"
	"time"

	"stockdesk-backend/internal/models"
)

func TestRoleCapabilities(t *testing.T) {
	if !RoleCapabilities(models.RoleAdmin).Allows("anything.at.all") {
		t.Error("admin wildcard must allow every route")
	}
	if !RoleCapabilities(models.RoleManager).Allows("sales-orders.delete") {
		t.Error("manager must be allowed to delete sales orders")
	}
	if !RoleCapabilities(models.RoleManager).Allows("purchase-indents.approve") {
		t.Error("manager must be allowed to decide indents")
	}
	if RoleCapabilities(models.RoleManager).Allows("users.update") {
		t.Error("manager must not get routes outside its set")
	}
	if RoleCapabilities(models.RoleUser).Allows("customers.create") {
		t.Error("user role has no built-in capabilities")
	}
}

func TestDecide(t *testing.T) {
	perm := &models.Permission{ID: 1, Route: "customers.create"}
	now := time.Now()

	cases := []struct {
		name  string
		role  models.UserRole
		perm  *models.Permission
		grant *models.UserPermission
		want  bool
	}{
		{"admin ignores missing grant", models.RoleAdmin, nil, nil, true},
		{"user without grant record", models.RoleUser, perm, nil, false},
		{"user with active grant", models.RoleUser, perm,
			&models.UserPermission{Granted: true}, true},
		{"user with revoked grant", models.RoleUser, perm,
			&models.UserPermission{Granted: false, RevokedAt: &now}, false},
		{"revoked even when granted flag stale", models.RoleUser, perm,
			&models.UserPermission{Granted: true, RevokedAt: &now}, false},
		{"unknown permission", models.RoleUser, nil, nil, false},
	}

	for _, c := range cases {
		caps := RoleCapabilities(c.role)
		if got := Decide(caps, "customers.create", c.perm, c.grant); got != c.want {
			t.Errorf("%s: Decide = %v, want %v", c.name, got, c.want)
		}
	}
}
