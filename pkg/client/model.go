package client

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date on the wire: "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("illegal date field %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

// DateTime is a wall-clock timestamp on the wire: "2006-01-02T15:04:05".
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Second)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("illegal date time field %q: %w", s, err)
	}
	*d = DateTime{t}
	return nil
}

// User is the account entity as the API serializes it.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	IconURL   string `json:"iconUrl,omitempty"`
	Email     string `json:"email,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate Date   `json:"birthDate,omitempty"`
}

// UserToken is the session credential returned by login.
type UserToken struct {
	Token      string   `json:"token"`
	Username   string   `json:"username"`
	IssueTime  DateTime `json:"issueTime"`
	ExpireTime DateTime `json:"expireTime"`
}

// Chat is a named member group.
type Chat struct {
	ChatID  string   `json:"chatId,omitempty"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Location is one position ping.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Time      DateTime `json:"time"`
}

// Message is the generic envelope carried by error responses and
// plain-message successes.
type Message struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// CreatedMessage pairs the canonical URL of a newly created resource with a
// confirmation message.
type CreatedMessage struct {
	EntityURL string `json:"entityUrl"`
	Message   string `json:"message"`
}
