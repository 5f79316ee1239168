package ctdf

type User struct {
	Identifier string `groups:"basic,detailed"`
	Name       string `groups:"basic,detailed"`
	Email      string `groups:"detailed"`
	Points     int    `groups:"detailed"`
	IsAdmin    bool   `groups:"detailed"`
}
