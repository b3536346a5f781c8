package entities

import "time"

// ShowcaseEntry is one publicly listed finished video in the gallery.
type ShowcaseEntry struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	Views     int       `json:"views"`
}
