// Package policy binds the generic gate to this application's roles and resources.
package policy

import (
	"context"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/gate"
	"github.com/diewo77/go-press/internal/models"
)

// Resource types known to the gate.
const (
	ResourcePost     = "post"
	ResourceCategory = "category"
)

var readerPermissions = []gate.Permission{
	gate.NewPermission(ResourcePost, gate.ActionView),
	gate.NewPermission(ResourcePost, gate.ActionList),
	gate.NewPermission(ResourceCategory, gate.ActionView),
	gate.NewPermission(ResourceCategory, gate.ActionList),
}

var (
	ReaderProfile = gate.NewStaticProfile(string(models.RoleReader), readerPermissions...)
	AuthorProfile = gate.NewStaticProfile(string(models.RoleAuthor), append(readerPermissions,
		gate.NewPermission(ResourcePost, gate.ActionCreate),
		gate.NewPermission(ResourcePost, gate.ActionUpdate),
		gate.NewPermission(ResourcePost, gate.ActionDelete),
		gate.NewPermission(ResourcePost, gate.ActionPublish),
		gate.NewPermission(ResourcePost, gate.ActionUnpublish),
	)...)
	AdminProfile = gate.NewStaticProfile(string(models.RoleAdmin), gate.PermissionSuperAdmin)
)

// ProfileFor returns the profile of a role, or nil for an unknown role.
func ProfileFor(role models.Role) gate.Profile {
	switch role {
	case models.RoleReader:
		return ReaderProfile
	case models.RoleAuthor:
		return AuthorProfile
	case models.RoleAdmin:
		return AdminProfile
	}
	return nil
}

// RoleResolver resolves an actor to the profile of its role.
// Roles are carried by the token, so no lookup is needed.
var RoleResolver = gate.ResolverFunc[auth.Actor](func(_ context.Context, a auth.Actor) (gate.Profile, error) {
	return ProfileFor(a.Role), nil
})
