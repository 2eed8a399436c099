package domain

import "time"

// User models an account that can authenticate and own items.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     *string   `json:"full_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch is a partial update. Nil fields and unset Nullables are left
// untouched; a set FullName with a nil Value clears it.
type UserPatch struct {
	Email       *string
	Username    *string
	FullName    Nullable[string]
	IsActive    *bool
	IsSuperuser *bool
}

// Empty reports whether the patch supplies no field at all.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Username == nil && !p.FullName.Set &&
		p.IsActive == nil && p.IsSuperuser == nil
}

// Apply copies every supplied field onto u. Index maintenance is the caller's job.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FullName.Set {
		u.FullName = p.FullName.clone()
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.IsSuperuser != nil {
		u.IsSuperuser = *p.IsSuperuser
	}
}
