package client

import (
	"context"

	"realtymedia/internal/domain/media"
)

type Service struct {
	repo  Repository
	media *media.Store
}

func NewService(repo Repository, mediaStore *media.Store) *Service {
	return &Service{repo: repo, media: mediaStore}
}

func (s *Service) Create(ctx context.Context, cl *Client) error {
	return s.repo.Create(ctx, cl)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAgent(ctx context.Context, agentID int64) ([]*Client, error) {
	return s.repo.ListByAgent(ctx, agentID)
}

// Delete removes the client and every attachment that belongs to them.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	owner := media.OwnerRef{Kind: media.OwnerClient, ID: id}
	if err := s.media.DeleteByOwner(ctx, owner); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
