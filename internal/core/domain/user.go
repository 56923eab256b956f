package domain

import "errors"

// Gender mirrors the client enum and is serialized by name.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
)

// User models an account. Username is the immutable unique key; Password
// holds the MD5 hex digest, never plaintext.
type User struct {
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"`
	Nickname  string   `json:"nickname,omitempty"`
	IconURL   string   `json:"iconUrl,omitempty"`
	Email     string   `json:"email,omitempty"`
	Gender    Gender   `json:"gender,omitempty"`
	BirthDate Date     `json:"birthDate,omitempty"`
	Friends   []string `json:"-"`
}

// WithoutSecrets returns a copy safe to serialize in responses.
func (u User) WithoutSecrets() User {
	u.Password = ""
	return u
}

// IsFriendWith reports whether friendName is on the user's friend list.
func (u User) IsFriendWith(friendName string) bool {
	for _, f := range u.Friends {
		if f == friendName {
			return true
		}
	}
	return false
}
