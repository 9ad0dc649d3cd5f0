package service

import (
	"context"

	"drivehub-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
}

// VehicleInput carries the loosely-typed form fields of the vehicle manage
// endpoint. Numeric fields are validated and coerced by the service.
type VehicleInput struct {
	Model        string
	Price        string
	Year         string
	Fuel         string
	Transmission string
	Seats        string
	Health       string
	Kms          string
	Status       string
}

type FleetService interface {
	// SaveVehicle creates a vehicle, or merges the input onto an existing
	// one when id names a known record. imageName is the stored upload
	// reference; empty keeps the current image on update.
	SaveVehicle(ctx context.Context, actor domain.Actor, id string, in VehicleInput, imageName string) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, actor domain.Actor, id string) error
}

type RentalService interface {
	// Create opens a rental against an Available vehicle. The price is
	// computed server-side from the stored vehicle price and the coupon;
	// quotedPrice is the client's advisory figure and only logged when it
	// disagrees.
	Create(ctx context.Context, actor domain.Actor, vehicleID string, quotedPrice float64, coupon, paymentID string) (*domain.Rental, error)
	// Return settles the Active rental and applies mileage, health decay,
	// and the maintenance transition to the vehicle.
	Return(ctx context.Context, actor domain.Actor, txID string, kmsDriven int, fine float64) (*domain.Rental, error)
}

// Stats are the aggregate figures of the admin dashboard.
type Stats struct {
	Revenue float64 `json:"revenue"`
	Active  int     `json:"active"`
	Fleet   int     `json:"fleet"`
	Kms     int     `json:"kms"`
}

// SyncView is the role-scoped response of the sync endpoint.
type SyncView struct {
	Role     domain.Role      `json:"role"`
	Vehicles []domain.Vehicle `json:"vehicles"`
	Rentals  []domain.Rental  `json:"rentals"`
	Stats    *Stats           `json:"stats,omitempty"`
}

type ReportService interface {
	// Sync sweeps expired maintenance cool-downs, then assembles the view
	// for the actor's role.
	Sync(ctx context.Context, actor domain.Actor) (*SyncView, error)
	SweepMaintenance(ctx context.Context) (int, error)
}
