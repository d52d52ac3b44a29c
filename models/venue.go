package models

// Venue is the upstream organization payload: branding plus the pickup
// spots (and, for table codes, the scanned table).
type Venue struct {
	ID          uint       `json:"id"`
	CompanyName string     `json:"companyName"`
	Logo        string     `json:"logo"`
	ColorTheme  string     `json:"colorTheme"`
	Schedule    string     `json:"schedule,omitempty"`
	Spots       []Spot     `json:"spots"`
	Table       *Table     `json:"table,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
	Products    []Product  `json:"products,omitempty"`
}

// Spot is a pickup location associated with a venue.
type Spot struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Table is a specific in-venue table code.
type Table struct {
	ID       uint   `json:"id"`
	TableNum string `json:"tableNum"`
}
