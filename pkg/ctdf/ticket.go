package ctdf

import "time"

type FareCategory string

const (
	FareCategorySingle  FareCategory = "single"
	FareCategoryReturn  FareCategory = "return"
	FareCategoryGroup   FareCategory = "group"
	FareCategoryTourist FareCategory = "tourist"
)

func (f FareCategory) IsValid() bool {
	switch f {
	case FareCategorySingle, FareCategoryReturn, FareCategoryGroup, FareCategoryTourist:
		return true
	}

	return false
}

type PaymentMethod string

const (
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodUPI       PaymentMethod = "upi"
	PaymentMethodMetroCard PaymentMethod = "metro-card"
)

type TicketStatus string

const (
	TicketStatusActive   TicketStatus = "active"
	TicketStatusUsed     TicketStatus = "used"
	TicketStatusUpcoming TicketStatus = "upcoming"
)

type Ticket struct {
	Identifier string `groups:"basic"`
	UserRef    string `groups:"internal"`

	From string `groups:"basic"`
	To   string `groups:"basic"`

	Category   FareCategory `groups:"basic"`
	Passengers int          `groups:"basic"`

	Fare          int           `groups:"basic"`
	PaymentMethod PaymentMethod `groups:"detailed"`

	Status TicketStatus `groups:"basic"`

	Date string `groups:"basic"`
	Time string `groups:"basic"`

	ValidFrom  time.Time `groups:"detailed"`
	ValidUntil time.Time `groups:"detailed"`

	CreationDateTime time.Time `groups:"internal"`
}

type QuickPurchase struct {
	From string
	To   string
	Fare int
}
