package domain

import "errors"

var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrNotChatMember = errors.New("caller is not a chat member")
)

// Chat is a named group of users exchanging locations and messages.
type Chat struct {
	ChatID  string   `json:"chatId"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// HasMember reports whether username belongs to the chat.
func (c Chat) HasMember(username string) bool {
	for _, m := range c.Members {
		if m == username {
			return true
		}
	}
	return false
}

// RemoveMember deletes username from the member list, preserving order.
// It reports whether the member was present.
func (c *Chat) RemoveMember(username string) bool {
	for i, m := range c.Members {
		if m == username {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			return true
		}
	}
	return false
}
