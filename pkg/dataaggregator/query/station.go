package query

type Station struct {
	Identifier string
	Name       string
}

type StationSearch struct {
	Term  string
	Limit int
}

type StationsOnLine struct {
	LineRef string
}

type Stations struct{}
