package entities

// CarResponse is one vehicle in the catalog or availability results.
type CarResponse struct {
	ID           int     `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	CarCode      string  `json:"car_code"`
	Price        float64 `json:"price"`
	Seats        int     `json:"seats"`
	Doors        int     `json:"doors"`
	Fuel         string  `json:"fuel"`
	Transmission string  `json:"transmission"`
	Image        string  `json:"image"`
}

// OptionResponse is one entry of the extras catalog.
type OptionResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Billing   string  `json:"billing"`
	MaxAmount int     `json:"max_amount"`
}
