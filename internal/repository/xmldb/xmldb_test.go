package xmldb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"drivehub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestDB_MissingFileIsEmptyCollection(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)

	err = db.View("ghosts", func(recs []Record) error {
		assert.Empty(t, recs)
		return nil
	})
	assert.NoError(t, err)
}

func TestDB_Roundtrip(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)

	in := []Record{
		{"id": "1", "name": "first"},
		{"id": "2", "name": "second & <escaped>"},
	}
	err = db.Update("things", func(recs []Record) ([]Record, error) {
		return in, nil
	})
	require.NoError(t, err)

	err = db.View("things", func(recs []Record) error {
		require.Len(t, recs, 2)
		assert.Equal(t, "first", recs[0]["name"])
		assert.Equal(t, "second & <escaped>", recs[1]["name"])
		return nil
	})
	assert.NoError(t, err)
}

func TestDB_UpdateErrorAbortsWrite(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, db.Update("things", func(recs []Record) ([]Record, error) {
		return []Record{{"id": "1"}}, nil
	}))

	boom := errors.New("boom")
	err = db.Update("things", func(recs []Record) ([]Record, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	err = db.View("things", func(recs []Record) error {
		assert.Len(t, recs, 1)
		return nil
	})
	assert.NoError(t, err)
}

func TestDB_MalformedFileSurfacesDecodeError(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "things.xml"), []byte("<things><record><id>1"), 0o644))

	err = db.View("things", func(recs []Record) error { return nil })
	var derr *DecodeError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, "things", derr.Collection)
}

func TestNewStore_SeedsDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@rental.com", users[0].Email)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, "user@gmail.com", users[1].Email)
	assert.Equal(t, domain.RoleUser, users[1].Role)

	vehicles, err := store.Vehicles.List(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	v := vehicles[0]
	assert.Equal(t, "101", v.ID)
	assert.Equal(t, "Tesla Model S", v.Model)
	assert.Equal(t, 1200.0, v.Price)
	assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
	assert.Equal(t, 100, v.Health)
	assert.Equal(t, 5000, v.Kms)

	rentals, err := store.Rentals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rentals)
}

func TestNewStore_SeedLeavesExistingDataAlone(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, &domain.User{
		ID: "3", Name: "Third", Email: "third@test.com", Password: "pw", Role: domain.RoleUser,
	}))

	// Reopening must not reset collections back to the bootstrap set.
	store2, err := NewStore(dir)
	require.NoError(t, err)
	users, err := store2.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserRepo_CreateRejectsDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Users.Create(ctx, &domain.User{
		ID: "9", Name: "Imposter", Email: "admin@rental.com", Password: "x", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestVehicleRepo_CRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("GetByID", func(t *testing.T) {
		v, err := store.Vehicles.GetByID(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, "Tesla Model S", v.Model)

		_, err = store.Vehicles.GetByID(ctx, "999")
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	t.Run("Create and Update", func(t *testing.T) {
		v := &domain.Vehicle{
			ID: "102", Model: "Honda City", Price: 800, Status: domain.VehicleStatusAvailable,
			Health: 100, Fuel: "Petrol", Year: "2023", Transmission: "Manual", Seats: "5",
		}
		require.NoError(t, store.Vehicles.Create(ctx, v))

		v.Price = 850
		require.NoError(t, store.Vehicles.Update(ctx, v))

		got, err := store.Vehicles.GetByID(ctx, "102")
		require.NoError(t, err)
		assert.Equal(t, 850.0, got.Price)

		err = store.Vehicles.Update(ctx, &domain.Vehicle{ID: "999"})
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Vehicles.Delete(ctx, "102"))
		_, err := store.Vehicles.GetByID(ctx, "102")
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)

		assert.ErrorIs(t, store.Vehicles.Delete(ctx, "999"), domain.ErrVehicleNotFound)
	})
}

func TestVehicleRepo_MarkRented(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v, err := store.Vehicles.MarkRented(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusRented, v.Status)

	// A second claim loses.
	_, err = store.Vehicles.MarkRented(ctx, "101")
	assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)

	// A rented vehicle cannot be deleted.
	assert.ErrorIs(t, store.Vehicles.Delete(ctx, "101"), domain.ErrVehicleRented)

	_, err = store.Vehicles.MarkRented(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestVehicleRepo_SweepMaintenance(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	setMaintenance := func(t *testing.T, store *Store, start string) {
		t.Helper()
		v, err := store.Vehicles.GetByID(ctx, "101")
		require.NoError(t, err)
		v.Status = domain.VehicleStatusMaintenance
		v.Health = 20
		v.MaintenanceStart = start
		require.NoError(t, store.Vehicles.Update(ctx, v))
	}

	t.Run("Expired cool-down restores the vehicle", func(t *testing.T) {
		store := newTestStore(t)
		setMaintenance(t, store, now.Add(-61*time.Minute).Format(domain.MaintenanceTimeLayout))

		restored, err := store.Vehicles.SweepMaintenance(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, restored)

		v, err := store.Vehicles.GetByID(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
		assert.Equal(t, domain.FullHealth, v.Health)
		assert.Empty(t, v.MaintenanceStart)
	})

	t.Run("Active cool-down is left alone", func(t *testing.T) {
		store := newTestStore(t)
		setMaintenance(t, store, now.Add(-30*time.Minute).Format(domain.MaintenanceTimeLayout))

		restored, err := store.Vehicles.SweepMaintenance(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, restored)

		v, err := store.Vehicles.GetByID(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusMaintenance, v.Status)
	})

	t.Run("Unparsable timestamp is left for inspection", func(t *testing.T) {
		store := newTestStore(t)
		setMaintenance(t, store, "not-a-timestamp")

		restored, err := store.Vehicles.SweepMaintenance(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, restored)

		v, err := store.Vehicles.GetByID(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, domain.VehicleStatusMaintenance, v.Status)
		assert.Equal(t, "not-a-timestamp", v.MaintenanceStart)
	})
}

func TestRentalRepo_CreateAndClose(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rental := &domain.Rental{
		TxID: "TX-AAAA1111", UserEmail: "user@gmail.com", UserName: "Client One",
		VehicleID: "101", VehicleModel: "Tesla Model S",
		Price: 1200, Total: 1200, PaymentMethod: "UPI", PaymentID: "N/A",
		Status: domain.RentalStatusActive, Date: "2026-01-01 10:00",
	}
	require.NoError(t, store.Rentals.Create(ctx, rental))

	t.Run("ListByEmail scopes to the renter", func(t *testing.T) {
		mine, err := store.Rentals.ListByEmail(ctx, "user@gmail.com")
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		other, err := store.Rentals.ListByEmail(ctx, "admin@rental.com")
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("Close settles the rental with the fine", func(t *testing.T) {
		closed, err := store.Rentals.Close(ctx, "TX-AAAA1111", 50, "2026-01-02 09:30")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusClosed, closed.Status)
		assert.Equal(t, 1250.0, closed.Total)
		assert.Equal(t, "2026-01-02 09:30", closed.ReturnDate)
	})

	t.Run("Closing twice fails", func(t *testing.T) {
		_, err := store.Rentals.Close(ctx, "TX-AAAA1111", 0, "2026-01-03 09:30")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})

	t.Run("Unknown tx_id fails", func(t *testing.T) {
		_, err := store.Rentals.Close(ctx, "TX-DEAD0000", 0, "2026-01-03 09:30")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}
