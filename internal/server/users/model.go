package users

import "time"

// User is the persisted identity record. PasswordHash never leaves the
// service layer.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	ProfilePic   string
	CreatedAt    time.Time
}
