package models

// User is an account known to the credential store. Username is the lookup key.
type User struct {
	ID           int    `json:"-" db:"id"`
	Username     string `json:"username" db:"username"`
	FullName     string `json:"full_name" db:"full_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // don’t expose hash
	Disabled     bool   `json:"disabled" db:"disabled"`
}
