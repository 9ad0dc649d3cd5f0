package domain

type RentalStatus string

const (
	RentalStatusActive RentalStatus = "Active"
	RentalStatusClosed RentalStatus = "Closed"
)

// RentalTimeLayout is the stored format of Rental.Date and Rental.ReturnDate.
const RentalTimeLayout = "2006-01-02 15:04"

// Rental is one row of the transaction ledger. UserName and VehicleModel are
// denormalized snapshots taken at creation time and never refreshed.
type Rental struct {
	TxID          string       `json:"tx_id"`
	UserEmail     string       `json:"user_email"`
	UserName      string       `json:"user_name"`
	VehicleID     string       `json:"vehicle_id"`
	VehicleModel  string       `json:"vehicle_model"`
	Price         float64      `json:"price"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	PaymentID     string       `json:"payment_id"`
	Status        RentalStatus `json:"status"`
	Date          string       `json:"date"`
	ReturnDate    string       `json:"return_date,omitempty"`
}
