package agent

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "realtymedia/internal/pkg/jwt"
)

type Service struct {
	repo Repository
	jwt  *jwtsvc.Service
}

func NewService(repo Repository, jwt *jwtsvc.Service) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Login checks credentials and returns a signed access token plus the agent.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Agent, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrAgentNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(a.ID, a.Email)
	if err != nil {
		return "", nil, err
	}
	return token, a, nil
}

// GetByID returns the agent's profile.
func (s *Service) GetByID(ctx context.Context, id int64) (*Agent, error) {
	return s.repo.GetByID(ctx, id)
}
