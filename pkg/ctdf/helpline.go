package ctdf

type HelplineContact struct {
	Title       string
	Phone       string
	Hours       string
	Description string
}

type FAQ struct {
	Question string
	Answer   string
}

type StationHelpDesk struct {
	Name     string
	Location string
	Hours    string
}
