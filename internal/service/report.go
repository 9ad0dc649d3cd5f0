package service

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type reportService struct {
	vehicles repository.VehicleRepository
	rentals  repository.RentalRepository
}

func NewReportService(vehicles repository.VehicleRepository, rentals repository.RentalRepository) ReportService {
	return &reportService{vehicles: vehicles, rentals: rentals}
}

func (s *reportService) SweepMaintenance(ctx context.Context) (int, error) {
	return s.vehicles.SweepMaintenance(ctx, time.Now())
}

func (s *reportService) Sync(ctx context.Context, actor domain.Actor) (*SyncView, error) {
	if _, err := s.SweepMaintenance(ctx); err != nil {
		return nil, err
	}

	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		rentals, err := s.rentals.List(ctx)
		if err != nil {
			return nil, err
		}

		stats := &Stats{Fleet: len(vehicles)}
		for _, rt := range rentals {
			stats.Revenue += rt.Total
			if rt.Status == domain.RentalStatusActive {
				stats.Active++
			}
		}
		for _, v := range vehicles {
			stats.Kms += v.Kms
		}

		return &SyncView{
			Role:     domain.RoleAdmin,
			Vehicles: vehicles,
			Rentals:  rentals,
			Stats:    stats,
		}, nil
	}

	rentals, err := s.rentals.ListByEmail(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	return &SyncView{
		Role:     domain.RoleUser,
		Vehicles: vehicles,
		Rentals:  rentals,
	}, nil
}
