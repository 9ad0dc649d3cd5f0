package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type fleetService struct {
	vehicles repository.VehicleRepository
}

func NewFleetService(vehicles repository.VehicleRepository) FleetService {
	return &fleetService{vehicles: vehicles}
}

// newVehicleID generates a short numeric-string id for a new vehicle.
func newVehicleID() string {
	id := uuid.New()
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(id[0:4])%1000000)
}

// parsedVehicleInput is VehicleInput after validation, with defaults applied
// for absent fields.
type parsedVehicleInput struct {
	model        string
	price        float64
	year         string
	fuel         string
	transmission string
	seats        string
	health       int
	kms          int
	status       domain.VehicleStatus
}

func validateVehicleInput(in VehicleInput) (parsedVehicleInput, error) {
	p := parsedVehicleInput{
		model:        in.Model,
		year:         in.Year,
		fuel:         in.Fuel,
		transmission: in.Transmission,
		seats:        in.Seats,
	}
	if p.model == "" {
		return p, &domain.ValidationError{Field: "model", Reason: "required"}
	}

	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil {
		return p, &domain.ValidationError{Field: "price", Reason: "must be numeric"}
	}
	if price < 0 {
		return p, &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	p.price = price

	if p.year == "" {
		p.year = "2024"
	} else if n, err := strconv.Atoi(p.year); err != nil || n < 0 {
		return p, &domain.ValidationError{Field: "year", Reason: "must be a non-negative number"}
	}
	if p.fuel == "" {
		p.fuel = "Petrol"
	}
	if p.transmission == "" {
		p.transmission = "Auto"
	}
	if p.seats == "" {
		p.seats = "4"
	} else if n, err := strconv.Atoi(p.seats); err != nil || n < 0 {
		return p, &domain.ValidationError{Field: "seats", Reason: "must be a non-negative number"}
	}

	p.health = domain.FullHealth
	if in.Health != "" {
		n, err := strconv.Atoi(in.Health)
		if err != nil || n < 0 || n > domain.FullHealth {
			return p, &domain.ValidationError{Field: "health", Reason: "must be a number between 0 and 100"}
		}
		p.health = n
	}

	if in.Kms != "" {
		n, err := strconv.Atoi(in.Kms)
		if err != nil || n < 0 {
			return p, &domain.ValidationError{Field: "kms", Reason: "must be a non-negative number"}
		}
		p.kms = n
	}

	p.status = domain.VehicleStatusAvailable
	if in.Status != "" {
		switch domain.VehicleStatus(in.Status) {
		case domain.VehicleStatusAvailable, domain.VehicleStatusRented, domain.VehicleStatusMaintenance:
			p.status = domain.VehicleStatus(in.Status)
		default:
			return p, &domain.ValidationError{Field: "status", Reason: "unknown status"}
		}
	}

	return p, nil
}

func (s *fleetService) SaveVehicle(ctx context.Context, actor domain.Actor, id string, in VehicleInput, imageName string) (*domain.Vehicle, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	p, err := validateVehicleInput(in)
	if err != nil {
		return nil, err
	}

	// The frontend posts the literal string "null" for a new vehicle.
	if id != "" && id != "null" {
		v, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		v.Model = p.model
		v.Price = p.price
		v.Year = p.year
		v.Fuel = p.fuel
		v.Transmission = p.transmission
		v.Seats = p.seats
		v.Health = p.health
		v.Kms = p.kms
		v.Status = p.status
		if imageName != "" {
			v.Image = imageName
		}
		if err := s.vehicles.Update(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	}

	v := &domain.Vehicle{
		ID:           newVehicleID(),
		Model:        p.model,
		Price:        p.price,
		Status:       p.status,
		Health:       p.health,
		Kms:          p.kms,
		Fuel:         p.fuel,
		Year:         p.year,
		Transmission: p.transmission,
		Seats:        p.seats,
		Image:        imageName,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *fleetService) DeleteVehicle(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return s.vehicles.Delete(ctx, id)
}
