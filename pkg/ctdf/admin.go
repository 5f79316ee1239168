package ctdf

// Rider is an entry in the operator dashboard's rider list
type Rider struct {
	Identifier string `csv:"id"`
	Name       string `csv:"name"`
	Email      string `csv:"email"`
	Tickets    int    `csv:"tickets"`
	Joined     string `csv:"joined"`
	Status     string `csv:"status"`
}

type StationFootfall struct {
	Identifier      string `csv:"id"`
	Name            string `csv:"name"`
	Footfall        int    `csv:"footfall"`
	Status          string `csv:"status"`
	MaintenanceDate string `csv:"maintenance_date"`
}

type RidershipRecord struct {
	Label string
	Value int
}
