package xmldb

import (
	"context"

	"drivehub-backend/internal/domain"
)

const rentalsCollection = "rentals"

type rentalRepo struct {
	db *DB
}

func rentalFromRecord(rec Record) (domain.Rental, error) {
	rt := domain.Rental{
		TxID:          rec["tx_id"],
		UserEmail:     rec["user_email"],
		UserName:      rec["user_name"],
		VehicleID:     rec["vehicle_id"],
		VehicleModel:  rec["vehicle_model"],
		PaymentMethod: rec["payment_method"],
		PaymentID:     rec["payment_id"],
		Status:        domain.RentalStatus(rec["status"]),
		Date:          rec["date"],
		ReturnDate:    rec["return_date"],
	}

	var err error
	if rt.Price, err = parseFloatField(rec, "price", 0); err != nil {
		return rt, err
	}
	if rt.Total, err = parseFloatField(rec, "total", 0); err != nil {
		return rt, err
	}
	return rt, nil
}

func rentalToRecord(rt *domain.Rental) Record {
	rec := Record{
		"tx_id":          rt.TxID,
		"user_email":     rt.UserEmail,
		"user_name":      rt.UserName,
		"vehicle_id":     rt.VehicleID,
		"vehicle_model":  rt.VehicleModel,
		"price":          formatFloat(rt.Price),
		"total":          formatFloat(rt.Total),
		"payment_method": rt.PaymentMethod,
		"payment_id":     rt.PaymentID,
		"status":         string(rt.Status),
		"date":           rt.Date,
	}
	if rt.ReturnDate != "" {
		rec["return_date"] = rt.ReturnDate
	}
	return rec
}

func (r *rentalRepo) decodeAll(recs []Record) ([]domain.Rental, error) {
	rentals := make([]domain.Rental, 0, len(recs))
	for _, rec := range recs {
		rt, err := rentalFromRecord(rec)
		if err != nil {
			return nil, &DecodeError{Collection: rentalsCollection, Path: r.db.path(rentalsCollection), Err: err}
		}
		rentals = append(rentals, rt)
	}
	return rentals, nil
}

func (r *rentalRepo) List(ctx context.Context) ([]domain.Rental, error) {
	var rentals []domain.Rental
	err := r.db.View(rentalsCollection, func(recs []Record) error {
		var derr error
		rentals, derr = r.decodeAll(recs)
		return derr
	})
	return rentals, err
}

func (r *rentalRepo) ListByEmail(ctx context.Context, email string) ([]domain.Rental, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Rental, 0, len(all))
	for _, rt := range all {
		if rt.UserEmail == email {
			mine = append(mine, rt)
		}
	}
	return mine, nil
}

func (r *rentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	return r.db.Update(rentalsCollection, func(recs []Record) ([]Record, error) {
		return append(recs, rentalToRecord(rental)), nil
	})
}

func (r *rentalRepo) Close(ctx context.Context, txID string, fine float64, returnedAt string) (*domain.Rental, error) {
	var closed *domain.Rental
	err := r.db.Update(rentalsCollection, func(recs []Record) ([]Record, error) {
		rentals, derr := r.decodeAll(recs)
		if derr != nil {
			return nil, derr
		}
		for i := range rentals {
			rt := &rentals[i]
			if rt.TxID != txID || rt.Status != domain.RentalStatusActive {
				continue
			}
			rt.Status = domain.RentalStatusClosed
			rt.Total = rt.Price + fine
			rt.ReturnDate = returnedAt
			snapshot := *rt
			closed = &snapshot

			out := make([]Record, 0, len(rentals))
			for j := range rentals {
				out = append(out, rentalToRecord(&rentals[j]))
			}
			return out, nil
		}
		return nil, domain.ErrRentalNotFound
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
