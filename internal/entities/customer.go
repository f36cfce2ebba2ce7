package entities

// CreateCustomerRequest carries the personal details collected on the
// customer form. firstName, lastName, email, address, country and dob are
// required; the rest is optional.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
	ZipCode   string `json:"zip_code,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country"`
	DOB       string `json:"dob"`
	Flight    string `json:"flight,omitempty"`
}

// CreateCustomerResponse reports the customer id. Existed is set when the
// email was already registered and the existing record was returned instead
// of a duplicate being created.
type CreateCustomerResponse struct {
	ID      int  `json:"id"`
	Existed bool `json:"existed,omitempty"`
}

type CustomerResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"`
}
