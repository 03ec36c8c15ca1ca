package domain

// OrderTemplate is a static preset used to prefill the order form. Templates
// have no lifecycle and no persistence beyond this built-in list.
type OrderTemplate struct {
	Name            string
	DurationMinutes int
	Price           float64
	Deposit         float64
	Description     string
}

var DefaultTemplates = []OrderTemplate{
	{Name: "Full-day wedding", DurationMinutes: 720, Price: 18000, Deposit: 2000, Description: "Complete wedding coverage from preparations to the evening party"},
	{Name: "Half-day wedding", DurationMinutes: 360, Price: 14000, Deposit: 2000, Description: "Wedding ceremony plus reception"},
	{Name: "Portrait session", DurationMinutes: 120, Price: 5000, Deposit: 0, Description: "Individual portrait session"},
	{Name: "Family session", DurationMinutes: 90, Price: 3500, Deposit: 0, Description: "Outdoor family session"},
	{Name: "Corporate event", DurationMinutes: 240, Price: 8000, Deposit: 1000, Description: "Company event and teambuilding coverage"},
}
