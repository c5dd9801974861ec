package models

// Role is a backend role such as "ASHA", "District Admin" or "State Admin".
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserProfile is the payload of the profile endpoint.
type UserProfile struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsVerified bool   `json:"is_verified"`
	Roles      []Role `json:"roles"`
}

// FullName joins first and last name, falling back to the username.
func (p UserProfile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.Username
	}
}

// PrimaryRole returns the name of the first role, or "" when none is assigned.
func (p UserProfile) PrimaryRole() string {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[0].Name
}

// ProfileUpdate is a partial profile sent with PATCH. Nil fields are omitted.
type ProfileUpdate struct {
	Email      *string `json:"email,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}
