package domain

import "time"

// User models a registered reader. Password is kept and compared as plain
// text; this is a known weakness of the service.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether the given credentials equal the stored ones.
func (u *User) Matches(username, password string) bool {
	return u != nil && u.Username == username && u.Password == password
}
