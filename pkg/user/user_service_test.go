package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]*entities.User{}}
}

func (m *memoryRepo) CreateUser(_ context.Context, u *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID.String()] = &cp
	return nil
}

func (m *memoryRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryRepo) GetDigestRecipients(context.Context) ([]*entities.User, error) {
	return nil, nil
}

func TestRegisterLoginMe(t *testing.T) {
	ctx := context.Background()
	jwtSvc := jwt.NewJWTServiceWithSecret("secret", time.Now)
	svc := NewUserService(newMemoryRepo(), jwtSvc)

	created, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sam", Email: " Sam@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", created.Email)
	assert.Equal(t, domain.RoleUser, created.Role)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "password123"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "SAM@example.com", Password: "password123"})
	require.NoError(t, err)
	id, _, err := jwtSvc.GetUserIDByToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	me, err := svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sam", me.Name)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemoryRepo(), jwt.NewJWTServiceWithSecret("secret", time.Now))

	_, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "sam@example.com", Password: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Me(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
