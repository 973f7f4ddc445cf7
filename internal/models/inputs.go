package models

// CartLineInput describes merchandise to add to a cart.
type CartLineInput struct {
	MerchandiseID string
	Quantity      int
}

// CartLineUpdateInput changes the quantity of an existing cart line.
type CartLineUpdateInput struct {
	LineID   string
	Quantity int
}

// CustomerInput carries profile fields for registration and updates. Nil
// fields are omitted from the mutation input.
type CustomerInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Phone     *string
}

// AddressInput carries mailing address fields for address mutations.
type AddressInput struct {
	Address1 string
	Address2 string
	City     string
	Province string
	Zip      string
	Country  string
	Phone    string
}
