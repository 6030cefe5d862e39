package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	jwtsvc "realtymedia/internal/pkg/jwt"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Agent), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Agent), args.Error(1)
}

func testAgent(t *testing.T) *Agent {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return &Agent{ID: 7, Email: "anna@realty.example", PasswordHash: string(hash), Name: "Anna"}
}

func TestService_Login_Success(t *testing.T) {
	repo := new(MockRepository)
	j := jwtsvc.New("test-secret", time.Hour)
	svc := NewService(repo, j)

	repo.On("GetByEmail", mock.Anything, "anna@realty.example").Return(testAgent(t), nil)

	token, a, err := svc.Login(context.Background(), "  Anna@Realty.example ", "secret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), a.ID)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AgentID)
	assert.Equal(t, "anna@realty.example", claims.Email)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, jwtsvc.New("test-secret", time.Hour))

	repo.On("GetByEmail", mock.Anything, "anna@realty.example").Return(testAgent(t), nil)

	_, _, err := svc.Login(context.Background(), "anna@realty.example", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, jwtsvc.New("test-secret", time.Hour))

	repo.On("GetByEmail", mock.Anything, "ghost@realty.example").Return(nil, ErrAgentNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@realty.example", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
