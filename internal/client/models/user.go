package models

// Role is the dashboard role of a signed-in user.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleClientAdmin Role = "client_admin"
)

// SessionUser is the cached profile of the signed-in user, stored as JSON next
// to the token pair.
type SessionUser struct {
	ID               ID     `json:"id"`
	Name             string `json:"name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	RoleName         Role   `json:"role,omitempty"`
	IsSuper          bool   `json:"is_super,omitempty"`
	OrganizationID   ID     `json:"organization_id,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// Role returns the explicit role if the backend sent one and falls back to the
// is_super flag otherwise.
func (u *SessionUser) Role() Role {
	if u == nil {
		return ""
	}
	switch u.RoleName {
	case RoleSuperAdmin, RoleClientAdmin:
		return u.RoleName
	}
	if u.IsSuper {
		return RoleSuperAdmin
	}
	return RoleClientAdmin
}

// DisplayName picks the most human-friendly identifier available.
func (u *SessionUser) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	case u.Phone != "":
		return u.Phone
	}
	return u.ID.String()
}
