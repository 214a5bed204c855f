package entity

// UserInfo is the authenticated user's profile as served by /users/me/.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"full_name,omitempty"`

	IsStaff     bool `json:"is_staff"`
	IsActive    bool `json:"is_active"`
	IsSuperuser bool `json:"is_superuser"`

	Groups      []string `json:"groups,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// HasPermission mirrors the backend's check: superusers hold every
// permission implicitly.
func (u *UserInfo) HasPermission(permission string) bool {
	if u.IsSuperuser {
		return true
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

type AppSettings struct {
	OrganizationName string `json:"organization_name,omitempty"`
	DefaultPageSize  int    `json:"default_page_size,omitempty"`
	Features         map[string]bool `json:"features,omitempty"`
}
