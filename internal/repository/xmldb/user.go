package xmldb

import (
	"context"

	"drivehub-backend/internal/domain"
)

const usersCollection = "users"

type userRepo struct {
	db *DB
}

func userFromRecord(rec Record) domain.User {
	return domain.User{
		ID:       rec["id"],
		Name:     rec["name"],
		Email:    rec["email"],
		Password: rec["password"],
		Role:     domain.Role(rec["role"]),
	}
}

func userToRecord(u *domain.User) Record {
	return Record{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
		"role":     string(u.Role),
	}
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.View(usersCollection, func(recs []Record) error {
		users = make([]domain.User, 0, len(recs))
		for _, rec := range recs {
			users = append(users, userFromRecord(rec))
		}
		return nil
	})
	return users, err
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.Update(usersCollection, func(recs []Record) ([]Record, error) {
		for _, rec := range recs {
			if rec["email"] == user.Email {
				return nil, domain.ErrEmailExists
			}
		}
		return append(recs, userToRecord(user)), nil
	})
}
