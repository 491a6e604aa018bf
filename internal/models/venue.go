package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Venue struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID       string    `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description,omitempty"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	Price         int       `gorm:"not null" json:"price"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Occasion      string    `json:"occasion,omitempty"`
	Images        []string  `gorm:"serializer:json" json:"images"`
	IsPosted      bool      `gorm:"not null;default:false;index" json:"isPosted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (v *Venue) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
