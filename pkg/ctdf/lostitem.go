package ctdf

import "time"

type LostItemStatus string

const (
	LostItemStatusPending LostItemStatus = "pending"
	LostItemStatusFound   LostItemStatus = "found"
	LostItemStatusClaimed LostItemStatus = "claimed"
)

type LostItem struct {
	Identifier string `groups:"basic" csv:"id"`

	Name     string `groups:"basic" csv:"name"`
	Category string `groups:"basic" csv:"category"`
	Station  string `groups:"basic" csv:"station"`
	Date     string `groups:"basic" csv:"date"`

	Status LostItemStatus `groups:"basic" csv:"status"`

	Description string `groups:"basic" csv:"description"`
	Contact     string `groups:"detailed" csv:"contact"`
	Image       string `groups:"basic" csv:"-"`

	CreationDateTime time.Time `groups:"internal" csv:"-"`
}
