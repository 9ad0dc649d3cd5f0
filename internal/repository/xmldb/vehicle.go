package xmldb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

const vehiclesCollection = "vehicles"

type vehicleRepo struct {
	db *DB
}

func parseIntField(rec Record, field string, def int) (int, error) {
	raw, ok := rec[field]
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return n, nil
}

func parseFloatField(rec Record, field string, def float64) (float64, error) {
	raw, ok := rec[field]
	if !ok || raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func vehicleFromRecord(rec Record) (domain.Vehicle, error) {
	v := domain.Vehicle{
		ID:               rec["id"],
		Model:            rec["model"],
		Status:           domain.VehicleStatus(rec["status"]),
		Fuel:             rec["fuel"],
		Year:             rec["year"],
		Transmission:     rec["transmission"],
		Seats:            rec["seats"],
		Image:            rec["image"],
		MaintenanceStart: rec["maintenance_start"],
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}

	var err error
	if v.Price, err = parseFloatField(rec, "price", 0); err != nil {
		return v, err
	}
	if v.Health, err = parseIntField(rec, "health", domain.FullHealth); err != nil {
		return v, err
	}
	if v.Kms, err = parseIntField(rec, "kms", 0); err != nil {
		return v, err
	}
	return v, nil
}

func vehicleToRecord(v *domain.Vehicle) Record {
	rec := Record{
		"id":           v.ID,
		"model":        v.Model,
		"price":        formatFloat(v.Price),
		"status":       string(v.Status),
		"health":       strconv.Itoa(v.Health),
		"kms":          strconv.Itoa(v.Kms),
		"fuel":         v.Fuel,
		"year":         v.Year,
		"transmission": v.Transmission,
		"seats":        v.Seats,
		"image":        v.Image,
	}
	if v.MaintenanceStart != "" {
		rec["maintenance_start"] = v.MaintenanceStart
	}
	return rec
}

func (r *vehicleRepo) decodeAll(recs []Record) ([]domain.Vehicle, error) {
	vehicles := make([]domain.Vehicle, 0, len(recs))
	for _, rec := range recs {
		v, err := vehicleFromRecord(rec)
		if err != nil {
			return nil, &DecodeError{Collection: vehiclesCollection, Path: r.db.path(vehiclesCollection), Err: err}
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func encodeVehicles(vehicles []domain.Vehicle) []Record {
	recs := make([]Record, 0, len(vehicles))
	for i := range vehicles {
		recs = append(recs, vehicleToRecord(&vehicles[i]))
	}
	return recs
}

// update decodes the collection, applies fn, and rewrites the result, all
// under the vehicles lock.
func (r *vehicleRepo) update(fn func(vehicles []domain.Vehicle) ([]domain.Vehicle, error)) error {
	return r.db.Update(vehiclesCollection, func(recs []Record) ([]Record, error) {
		vehicles, err := r.decodeAll(recs)
		if err != nil {
			return nil, err
		}
		out, err := fn(vehicles)
		if err != nil {
			return nil, err
		}
		return encodeVehicles(out), nil
	})
}

func (r *vehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.View(vehiclesCollection, func(recs []Record) error {
		var derr error
		vehicles, derr = r.decodeAll(recs)
		return derr
	})
	return vehicles, err
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var found *domain.Vehicle
	err := r.db.View(vehiclesCollection, func(recs []Record) error {
		vehicles, derr := r.decodeAll(recs)
		if derr != nil {
			return derr
		}
		for i := range vehicles {
			if vehicles[i].ID == id {
				found = &vehicles[i]
				return nil
			}
		}
		return domain.ErrVehicleNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.update(func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		return append(vehicles, *vehicle), nil
	})
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.update(func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i := range vehicles {
			if vehicles[i].ID == vehicle.ID {
				vehicles[i] = *vehicle
				return vehicles, nil
			}
		}
		return nil, domain.ErrVehicleNotFound
	})
}

func (r *vehicleRepo) Delete(ctx context.Context, id string) error {
	return r.update(func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i := range vehicles {
			if vehicles[i].ID != id {
				continue
			}
			if vehicles[i].Status == domain.VehicleStatusRented {
				return nil, domain.ErrVehicleRented
			}
			return append(vehicles[:i], vehicles[i+1:]...), nil
		}
		return nil, domain.ErrVehicleNotFound
	})
}

func (r *vehicleRepo) MarkRented(ctx context.Context, id string) (*domain.Vehicle, error) {
	var rented *domain.Vehicle
	err := r.update(func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i := range vehicles {
			if vehicles[i].ID != id {
				continue
			}
			if vehicles[i].Status != domain.VehicleStatusAvailable {
				return nil, domain.ErrVehicleUnavailable
			}
			vehicles[i].Status = domain.VehicleStatusRented
			snapshot := vehicles[i]
			rented = &snapshot
			return vehicles, nil
		}
		return nil, domain.ErrVehicleNotFound
	})
	if err != nil {
		return nil, err
	}
	return rented, nil
}

func (r *vehicleRepo) SweepMaintenance(ctx context.Context, now time.Time) (int, error) {
	restored := 0
	err := r.update(func(vehicles []domain.Vehicle) ([]domain.Vehicle, error) {
		for i := range vehicles {
			v := &vehicles[i]
			if v.Status != domain.VehicleStatusMaintenance || v.MaintenanceStart == "" {
				continue
			}
			expired, ok := v.MaintenanceExpired(now)
			if !ok {
				// Bad timestamp: leave the record alone so the value is
				// still there to inspect, and say so instead of silently
				// skipping.
				logger.Warn("unparsable maintenance_start, vehicle left in maintenance",
					"vehicle_id", v.ID, "maintenance_start", v.MaintenanceStart)
				continue
			}
			if expired {
				v.FinishMaintenance()
				restored++
			}
		}
		// The collection is rewritten even when nothing changed.
		return vehicles, nil
	})
	if err != nil {
		return 0, err
	}
	return restored, nil
}
