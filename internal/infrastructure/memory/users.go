package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
				return domain.ErrConflict
			}
		}
		user.ID = st.next("users")
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		u := *user
		st.users[u.ID] = &u
		return nil
	})
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		if u := st.userByName(username); u != nil {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) ExistsUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	var found bool
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username || strings.EqualFold(u.Email, email) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (s *state) userByName(username string) *entity.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}
