package service

import (
	"context"
	"testing"

	"drivehub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	adminActor = domain.Actor{ID: "1", Email: "admin@rental.com", Name: "Boss Surya", Role: domain.RoleAdmin}
	userActor  = domain.Actor{ID: "2", Email: "user@gmail.com", Name: "Client One", Role: domain.RoleUser}
)

func TestFleetService_SaveVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("Create with defaults", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("Create", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		svc := NewFleetService(vehicleRepo)

		v, err := svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Model: "Honda City", Price: "800"}, "")
		assert.NoError(t, err)
		assert.NotEmpty(t, v.ID)
		assert.Equal(t, 800.0, v.Price)
		assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
		assert.Equal(t, domain.FullHealth, v.Health)
		assert.Equal(t, 0, v.Kms)
		assert.Equal(t, "2024", v.Year)
		assert.Equal(t, "Petrol", v.Fuel)
		assert.Equal(t, "Auto", v.Transmission)
		assert.Equal(t, "4", v.Seats)
	})

	t.Run("Update merges onto existing record", func(t *testing.T) {
		existing := &domain.Vehicle{
			ID: "101", Model: "Tesla Model S", Price: 1200, Status: domain.VehicleStatusAvailable,
			Health: 100, Kms: 5000, Fuel: "Electric", Year: "2024", Transmission: "Auto",
			Seats: "5", Image: "tesla.png",
		}
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("GetByID", ctx, "101").Return(existing, nil)
		vehicleRepo.On("Update", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		svc := NewFleetService(vehicleRepo)

		in := VehicleInput{
			Model: "Tesla Model S", Price: "1400", Year: "2024", Fuel: "Electric",
			Transmission: "Auto", Seats: "5", Health: "90", Kms: "5200",
		}
		v, err := svc.SaveVehicle(ctx, adminActor, "101", in, "")
		assert.NoError(t, err)
		assert.Equal(t, "101", v.ID)
		assert.Equal(t, 1400.0, v.Price)
		assert.Equal(t, 90, v.Health)
		assert.Equal(t, 5200, v.Kms)
		// No new upload, the stored image survives.
		assert.Equal(t, "tesla.png", v.Image)
	})

	t.Run("Update replaces image when a new one is uploaded", func(t *testing.T) {
		existing := &domain.Vehicle{ID: "101", Model: "Tesla Model S", Price: 1200, Image: "tesla.png"}
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("GetByID", ctx, "101").Return(existing, nil)
		vehicleRepo.On("Update", ctx, mock.AnythingOfType("*domain.Vehicle")).Return(nil)
		svc := NewFleetService(vehicleRepo)

		v, err := svc.SaveVehicle(ctx, adminActor, "101", VehicleInput{Model: "Tesla Model S", Price: "1200"}, "abc_new.png")
		assert.NoError(t, err)
		assert.Equal(t, "abc_new.png", v.Image)
	})

	t.Run("Unknown id", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("GetByID", ctx, "999").Return(nil, domain.ErrVehicleNotFound)
		svc := NewFleetService(vehicleRepo)

		_, err := svc.SaveVehicle(ctx, adminActor, "999", VehicleInput{Model: "Ghost", Price: "1"}, "")
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	t.Run("Non-admin rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := NewFleetService(vehicleRepo)

		_, err := svc.SaveVehicle(ctx, userActor, "null", VehicleInput{Model: "Honda City", Price: "800"}, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid input", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := NewFleetService(vehicleRepo)
		var verr *domain.ValidationError

		_, err := svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Price: "800"}, "")
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "model", verr.Field)

		_, err = svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Model: "X", Price: "cheap"}, "")
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Field)

		_, err = svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Model: "X", Price: "-1"}, "")
		assert.ErrorAs(t, err, &verr)

		_, err = svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Model: "X", Price: "1", Health: "150"}, "")
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "health", verr.Field)

		_, err = svc.SaveVehicle(ctx, adminActor, "null", VehicleInput{Model: "X", Price: "1", Status: "Broken"}, "")
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
	})
}

func TestFleetService_DeleteVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("Delete", ctx, "101").Return(nil)
		svc := NewFleetService(vehicleRepo)

		assert.NoError(t, svc.DeleteVehicle(ctx, adminActor, "101"))
	})

	t.Run("Rented vehicle blocked", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		vehicleRepo.On("Delete", ctx, "101").Return(domain.ErrVehicleRented)
		svc := NewFleetService(vehicleRepo)

		assert.ErrorIs(t, svc.DeleteVehicle(ctx, adminActor, "101"), domain.ErrVehicleRented)
	})

	t.Run("Non-admin rejected", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepo)
		svc := NewFleetService(vehicleRepo)

		assert.ErrorIs(t, svc.DeleteVehicle(ctx, userActor, "101"), domain.ErrUnauthorized)
		vehicleRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
