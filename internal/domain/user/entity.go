package user

// User represents a user account entity in the system.
// A zero ID means the entity has not been persisted yet; the store
// assigns the ID on first save and it never changes afterwards.
type User struct {
	ID           int64  // ID is the store-assigned unique identifier
	Name         string // Name is the display name of the user
	Email        string // Email is the unique email address of the user
	PasswordHash string // PasswordHash is the hashed credential, never the plaintext
	IsActive     bool   // IsActive is true for live accounts, false after soft delete
}

// Persisted reports whether the entity has been saved to the store.
func (u *User) Persisted() bool {
	return u.ID != 0
}

// Deactivate marks the user as soft-deleted. The record stays in the
// store with all other fields untouched.
func (u *User) Deactivate() {
	u.IsActive = false
}
