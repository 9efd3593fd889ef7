package repository

import (
	"context"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByUsername devuelve (nil, nil) cuando no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
