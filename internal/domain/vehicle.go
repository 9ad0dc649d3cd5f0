package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "Available"
	VehicleStatusRented      VehicleStatus = "Rented"
	VehicleStatusMaintenance VehicleStatus = "Maintenance"
)

const (
	// MaintenanceCooldown is how long a vehicle stays in Maintenance before
	// the sweep restores it to Available with full health.
	MaintenanceCooldown = time.Hour

	// MaintenanceHealthFloor is the health threshold below which a returned
	// vehicle is sent to Maintenance.
	MaintenanceHealthFloor = 40

	// HealthDecayKms: health drops one point per this many kilometers driven.
	HealthDecayKms = 50

	// FullHealth is the health value of a fresh or freshly serviced vehicle.
	FullHealth = 100
)

// MaintenanceTimeLayout is the stored format of Vehicle.MaintenanceStart.
const MaintenanceTimeLayout = "2006-01-02 15:04:05"

type Vehicle struct {
	ID           string        `json:"id"`
	Model        string        `json:"model"`
	Price        float64       `json:"price"`
	Status       VehicleStatus `json:"status"`
	Health       int           `json:"health"`
	Kms          int           `json:"kms"`
	Fuel         string        `json:"fuel"`
	Year         string        `json:"year"`
	Transmission string        `json:"transmission"`
	Seats        string        `json:"seats"`
	Image        string        `json:"image"`
	// MaintenanceStart is kept as the stored string so that an unparsable
	// value survives a load/save cycle instead of being silently dropped.
	MaintenanceStart string `json:"maintenance_start,omitempty"`
}

// MaintenanceExpired reports whether the maintenance cool-down has elapsed.
// The second return value is false when MaintenanceStart cannot be parsed.
func (v *Vehicle) MaintenanceExpired(now time.Time) (expired, ok bool) {
	start, err := time.Parse(MaintenanceTimeLayout, v.MaintenanceStart)
	if err != nil {
		return false, false
	}
	return now.Sub(start) >= MaintenanceCooldown, true
}

// FinishMaintenance restores the vehicle after the cool-down.
func (v *Vehicle) FinishMaintenance() {
	v.Health = FullHealth
	v.Status = VehicleStatusAvailable
	v.MaintenanceStart = ""
}
