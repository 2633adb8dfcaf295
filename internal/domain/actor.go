package domain

// Role is a coarse permission group resolved by the identity provider.
type Role string

const (
	RoleLandlord      Role = "landlord"
	RoleTenant        Role = "tenant"
	RoleHousingOffice Role = "ho"
	RoleVendor        Role = "vendor"
	RoleAdmin         Role = "admin"
)

// Roles lists every role the platform knows about.
var Roles = []Role{RoleLandlord, RoleTenant, RoleHousingOffice, RoleVendor, RoleAdmin}

// ParseRole returns the Role matching s, or false for unknown values.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Actor is the calling principal. It is trusted as resolved by the identity layer.
type Actor struct {
	ID    string
	Roles []Role
}

// NewActor builds an actor, dropping duplicate roles.
func NewActor(id string, roles ...Role) Actor {
	seen := make(map[Role]bool, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return Actor{ID: id, Roles: out}
}

// HasRole reports whether the actor carries role r.
func (a Actor) HasRole(r Role) bool {
	for _, have := range a.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func (a Actor) IsLandlord() bool      { return a.HasRole(RoleLandlord) }
func (a Actor) IsTenant() bool        { return a.HasRole(RoleTenant) }
func (a Actor) IsHousingOffice() bool { return a.HasRole(RoleHousingOffice) }
func (a Actor) IsAdmin() bool         { return a.HasRole(RoleAdmin) }
