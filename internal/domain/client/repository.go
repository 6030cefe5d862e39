package client

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	ListByAgent(ctx context.Context, agentID int64) ([]*Client, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cl *Client) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Client, error) {
	var cl Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *repository) ListByAgent(ctx context.Context, agentID int64) ([]*Client, error) {
	var clients []*Client
	err := r.db.WithContext(ctx).Where("agent_id = ?", agentID).Order("created_at DESC").Find(&clients).Error
	return clients, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Client{}).Error
}
