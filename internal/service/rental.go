package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository"
)

const (
	couponCode     = "HUB20"
	couponDiscount = 0.20

	defaultPaymentMethod = "UPI"
	defaultPaymentID     = "N/A"
)

type rentalService struct {
	rentals  repository.RentalRepository
	vehicles repository.VehicleRepository
}

func NewRentalService(rentals repository.RentalRepository, vehicles repository.VehicleRepository) RentalService {
	return &rentalService{rentals: rentals, vehicles: vehicles}
}

func newTxID() string {
	id := uuid.New()
	return fmt.Sprintf("TX-%X", id[0:4])
}

// rentalPrice computes the charge server-side from the stored vehicle price.
func rentalPrice(vehiclePrice float64, coupon string) float64 {
	switch coupon {
	case "":
		return vehiclePrice
	case couponCode:
		return math.Round(vehiclePrice * (1 - couponDiscount))
	default:
		logger.Info("unknown coupon code, no discount applied", "coupon", coupon)
		return vehiclePrice
	}
}

func (s *rentalService) Create(ctx context.Context, actor domain.Actor, vehicleID string, quotedPrice float64, coupon, paymentID string) (*domain.Rental, error) {
	vehicle, err := s.vehicles.MarkRented(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	price := rentalPrice(vehicle.Price, coupon)
	if quotedPrice > 0 && quotedPrice != price {
		logger.Warn("client quoted price ignored",
			"vehicle_id", vehicleID, "quoted", quotedPrice, "charged", price)
	}

	if paymentID == "" {
		paymentID = defaultPaymentID
	}

	rental := &domain.Rental{
		TxID:          newTxID(),
		UserEmail:     actor.Email,
		UserName:      actor.Name,
		VehicleID:     vehicle.ID,
		VehicleModel:  vehicle.Model,
		Price:         price,
		Total:         price,
		PaymentMethod: defaultPaymentMethod,
		PaymentID:     paymentID,
		Status:        domain.RentalStatusActive,
		Date:          time.Now().Format(domain.RentalTimeLayout),
	}

	if err := s.rentals.Create(ctx, rental); err != nil {
		// Put the vehicle back so it is not stranded in Rented with no
		// ledger entry.
		vehicle.Status = domain.VehicleStatusAvailable
		if rerr := s.vehicles.Update(ctx, vehicle); rerr != nil {
			logger.Error("failed to release vehicle after rental write failure",
				"vehicle_id", vehicle.ID, "error", rerr)
		}
		return nil, err
	}

	return rental, nil
}

func (s *rentalService) Return(ctx context.Context, actor domain.Actor, txID string, kmsDriven int, fine float64) (*domain.Rental, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if kmsDriven < 0 {
		return nil, &domain.ValidationError{Field: "kms", Reason: "must not be negative"}
	}
	if fine < 0 {
		return nil, &domain.ValidationError{Field: "fine", Reason: "must not be negative"}
	}

	now := time.Now()
	rental, err := s.rentals.Close(ctx, txID, fine, now.Format(domain.RentalTimeLayout))
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, rental.VehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			// The rental is settled even when its vehicle is gone; the
			// ledger entry matters more than the orphaned reference.
			logger.Warn("rental closed but vehicle not found",
				"tx_id", txID, "vehicle_id", rental.VehicleID)
			return rental, nil
		}
		return nil, err
	}

	vehicle.Kms += kmsDriven
	vehicle.Health = max(0, vehicle.Health-kmsDriven/domain.HealthDecayKms)
	if vehicle.Health < domain.MaintenanceHealthFloor {
		vehicle.Status = domain.VehicleStatusMaintenance
		vehicle.MaintenanceStart = now.Format(domain.MaintenanceTimeLayout)
	} else {
		vehicle.Status = domain.VehicleStatusAvailable
		vehicle.MaintenanceStart = ""
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return rental, nil
}
