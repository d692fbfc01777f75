package user

import (
	"context"
)

// Repository is the data access contract for back-office users.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
