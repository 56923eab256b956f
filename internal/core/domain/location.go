package domain

import "errors"

var ErrLocationNotFound = errors.New("location not found")

// Location is one position ping uploaded by a user's device.
type Location struct {
	Username  string   `json:"-"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Time      DateTime `json:"time"`
}
