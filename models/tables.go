package models

import "time"

// Tables below live in the local sqlite database. Everything else is owned
// by the backend API.

type Image struct {
	ID          string    `gorm:"primary_key" json:"id"`
	Owner       string    `gorm:"not null;default:'';index" json:"-"`
	Name        string    `gorm:"not null" json:"name"`
	ContentType string    `gorm:"not null" json:"type"`
	Size        int64     `gorm:"not null" json:"size"`
	Data        string    `gorm:"type:text;not null" json:"data"` // base64 data URL
	Category    string    `gorm:"index" json:"category"`
	Tags        string    `json:"tags"` // comma separated
	AltText     string    `json:"alt_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is a JSON document kept under a namespaced key (builder wizards,
// shopper carts).
type Draft struct {
	Key       string    `gorm:"column:draft_key;primary_key" json:"key"`
	Kind      string    `gorm:"not null;index" json:"kind"`
	Payload   string    `gorm:"type:text" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
