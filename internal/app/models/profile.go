package models

// PermissionReadAll is the elevated capability required for moderation and
// roster-listing operations.
const PermissionReadAll = "ReadAll"

// Profile defines a portal user's profile, based on the 'profiles' table.
// Row ids match the identity provider's user ids.
type Profile struct {
	ID          string   `json:"id" db:"id"`
	Email       string   `json:"email" db:"email"`
	Permissions []string `json:"permissions,omitempty" db:"permissions"`
}

// HasPermission reports whether the profile carries the given capability.
func (p *Profile) HasPermission(permission string) bool {
	for _, have := range p.Permissions {
		if have == permission {
			return true
		}
	}
	return false
}
