package repository

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	// Create appends the user, failing with domain.ErrEmailExists when the
	// email is already taken (case-sensitive match).
	Create(ctx context.Context, user *domain.User) error
}

type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	// Delete removes the vehicle, failing with domain.ErrVehicleRented while
	// the vehicle is checked out.
	Delete(ctx context.Context, id string) error
	// MarkRented atomically transitions an Available vehicle to Rented and
	// returns its state at transition time. A vehicle in any other status
	// yields domain.ErrVehicleUnavailable.
	MarkRented(ctx context.Context, id string) (*domain.Vehicle, error)
	// SweepMaintenance restores every vehicle whose maintenance cool-down
	// has elapsed and rewrites the collection regardless of changes. It
	// returns the number of vehicles restored.
	SweepMaintenance(ctx context.Context, now time.Time) (int, error)
}

type RentalRepository interface {
	List(ctx context.Context) ([]domain.Rental, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Rental, error)
	Create(ctx context.Context, rental *domain.Rental) error
	// Close settles the Active rental with the given transaction id: status
	// Closed, total = price + fine, return date set. A rental that is
	// missing or already closed yields domain.ErrRentalNotFound.
	Close(ctx context.Context, txID string, fine float64, returnedAt string) (*domain.Rental, error)
}
