package query

type Line struct {
	Identifier string
}

type Lines struct{}
