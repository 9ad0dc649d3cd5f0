package xmldb

// seed initializes any absent collection file with the bootstrap record set:
// one admin, one regular user, one sample vehicle, and an empty rental
// ledger. Existing files are left untouched.
func seed(db *DB) error {
	if !db.Exists(usersCollection) {
		users := []Record{
			{"id": "1", "name": "Boss Surya", "email": "admin@rental.com", "password": "admin", "role": "admin"},
			{"id": "2", "name": "Client One", "email": "user@gmail.com", "password": "user", "role": "user"},
		}
		if err := db.save(usersCollection, users); err != nil {
			return err
		}
	}

	if !db.Exists(vehiclesCollection) {
		vehicles := []Record{{
			"id":           "101",
			"model":        "Tesla Model S",
			"price":        "1200",
			"status":       "Available",
			"health":       "100",
			"kms":          "5000",
			"fuel":         "Electric",
			"year":         "2024",
			"transmission": "Auto",
			"seats":        "5",
			"image":        "",
		}}
		if err := db.save(vehiclesCollection, vehicles); err != nil {
			return err
		}
	}

	if !db.Exists(rentalsCollection) {
		if err := db.save(rentalsCollection, nil); err != nil {
			return err
		}
	}

	return nil
}
