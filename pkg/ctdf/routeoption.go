package ctdf

type RouteOption struct {
	Identifier string

	DepartureStation string
	ArrivalStation   string

	DepartureTime string
	ArrivalTime   string

	// Minutes
	Duration  int
	Transfers int
	Fare      int
	// Fare for the whole party, filled in by the journey planner
	TotalFare int

	CrowdLevel CrowdLevel

	// Metres
	WalkingDistance int

	Lines []string
}

type JourneyPlanResults struct {
	OriginStation      string
	DestinationStation string

	SortBy     string
	Category   FareCategory
	Passengers int

	Fare         int
	RouteOptions []RouteOption
}
