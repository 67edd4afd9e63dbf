package usecase_test

import (
	"context"
	"io"
	"sort"

	"github.com/medisupply/authenticator-api/internal/application/ports"
	"github.com/medisupply/authenticator-api/internal/domain"
	"github.com/medisupply/authenticator-api/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria para los tests.
type fakeUserRepo struct {
	users     map[string]*entity.User
	createErr error
	deleted   []string
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int, status *entity.Status) ([]*entity.User, error) {
	var all []*entity.User
	for _, u := range r.users {
		if status != nil && u.Status != *status {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].InstitutionName < all[j].InstitutionName })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) Count(_ context.Context, status *entity.Status) (int, error) {
	if status == nil {
		return len(r.users), nil
	}
	n := 0
	for _, u := range r.users {
		if u.Status == *status {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id string, status entity.Status, enabled bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	u.Enabled = enabled
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeUserRepo) DeleteAll(_ context.Context) (int, error) {
	n := len(r.users)
	r.users = make(map[string]*entity.User)
	return n, nil
}

// fakeIdentity proveedor de identidad en memoria.
type fakeIdentity struct {
	createErr error
	assignErr error

	createdIDs []string
	assigned   map[string]string // keycloak ID -> rol
	deletedIDs []string

	tokens  *ports.TokenResponse
	authErr error
	role    string
	roleErr error
	roles   []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		assigned: make(map[string]string),
		tokens:   &ports.TokenResponse{AccessToken: "access-123", RefreshToken: "refresh-456", TokenType: "Bearer", ExpiresIn: 300},
		role:     entity.RoleCliente,
		roles:    entity.ValidRoles,
	}
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "kc-" + email
	f.createdIDs = append(f.createdIDs, id)
	return id, nil
}

func (f *fakeIdentity) AssignRealmRole(_ context.Context, userID, role string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned[userID] = role
	return nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, userID string) error {
	f.deletedIDs = append(f.deletedIDs, userID)
	return nil
}

func (f *fakeIdentity) Authenticate(_ context.Context, _, _ string) (*ports.TokenResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.tokens, nil
}

func (f *fakeIdentity) Logout(_ context.Context, _ string) error { return nil }

func (f *fakeIdentity) UserRole(_ context.Context, _ string) (string, error) {
	if f.roleErr != nil {
		return "", f.roleErr
	}
	return f.role, nil
}

func (f *fakeIdentity) AvailableRoles() []string { return f.roles }

// fakeStorage bucket de logos en memoria.
type fakeStorage struct {
	uploadErr error
	uploaded  []string
}

func (f *fakeStorage) UploadLogo(_ context.Context, objectName, _ string, r io.Reader, _ int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	_, _ = io.Copy(io.Discard, r)
	f.uploaded = append(f.uploaded, objectName)
	return "https://storage.local/medisupply-logos/" + objectName, nil
}
