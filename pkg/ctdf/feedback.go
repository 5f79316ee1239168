package ctdf

import "time"

type Feedback struct {
	Identifier string

	Name     string
	Email    string
	Category string
	Message  string

	CreationDateTime time.Time
}
