package ctdf

import "golang.org/x/exp/slices"

type Station struct {
	Identifier string `groups:"basic"`
	Name       string `groups:"basic"`
	Area       string `groups:"basic"`

	Lines []string `groups:"basic"`
	Order int      `groups:"basic"`

	X float64 `groups:"detailed"`
	Y float64 `groups:"detailed"`
}

func (s *Station) OnLine(lineRef string) bool {
	return slices.Contains(s.Lines, lineRef)
}

// IsInterchange is true for stations served by more than one line
func (s *Station) IsInterchange() bool {
	return len(s.Lines) > 1
}

type Line struct {
	Identifier      string `groups:"basic"`
	Name            string `groups:"basic"`
	Color           string `groups:"basic"`
	BackgroundColor string `groups:"basic"`

	// SVG path used by the network map
	Path string `groups:"detailed"`
}
