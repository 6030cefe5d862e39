package client

import "time"

// Client is a buyer/seller contact managed by an agent. Document attachments
// (contracts, ID scans) hang off clients through the media subsystem.
type Client struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AgentID   int64     `gorm:"column:agent_id;index" json:"agent_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	Phone     string    `gorm:"column:phone" json:"phone,omitempty"`
	Notes     string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
