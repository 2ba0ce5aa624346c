package memory

import (
	"context"
	"sort"

	"github.com/ecovia/carbon-market-api/internal/domain"
	"github.com/ecovia/carbon-market-api/internal/domain/entity"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre el store en memoria.
type UserRepo struct {
	s    *Store
	inTx bool
}

// NewUserRepository construye el adaptador de usuarios sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create persiste un nuevo usuario. El username es único.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := cloneUser(&u)
	return &out, nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	for _, u := range r.s.users {
		if u.Username == username {
			out := cloneUser(&u)
			return &out, nil
		}
	}
	return nil, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// ListByOrganization lista los usuarios de una organización, más antiguos primero.
func (r *UserRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.User, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var list []*entity.User
	for _, u := range r.s.users {
		if u.OrganizationID == organizationID {
			out := cloneUser(&u)
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// cloneUser copia el usuario incluyendo la distancia apuntada, para que el
// store no comparta punteros con los llamadores.
func cloneUser(u *entity.User) entity.User {
	out := *u
	if u.CommuteDistance != nil {
		d := *u.CommuteDistance
		out.CommuteDistance = &d
	}
	return out
}
