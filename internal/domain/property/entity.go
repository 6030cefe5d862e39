package property

import "time"

// Property is a listing managed by an agent. The media subsystem attaches
// images and documents to it by id; there is no back-reference here.
type Property struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AgentID     int64     `gorm:"column:agent_id;index" json:"agent_id"`
	Address     string    `gorm:"column:address" json:"address"`
	City        string    `gorm:"column:city" json:"city"`
	Price       float64   `gorm:"column:price" json:"price"`
	Rooms       int       `gorm:"column:rooms" json:"rooms,omitempty"`
	AreaSqm     float64   `gorm:"column:area_sqm" json:"area_sqm,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Property) TableName() string { return "properties" }
