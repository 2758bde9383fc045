package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	SignaturePath string    `gorm:"size:255;not null" json:"signature_path"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	SignaturePath string    `json:"signature_path"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		SignaturePath: u.SignaturePath,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Asset represents assets table
type Asset struct {
	ID                        uint    `gorm:"primaryKey" json:"id"`
	TrackingID                string  `gorm:"uniqueIndex;size:20;not null" json:"tracking_id"`
	AssetName                 string  `gorm:"size:255;not null" json:"asset_name"`
	AssetCode                 string  `gorm:"size:255" json:"asset_code"`
	SerialNumber              string  `gorm:"size:255" json:"serial_number"`
	BranchName                string  `gorm:"size:255;not null" json:"branch_name"`
	DateReceived              string  `gorm:"size:20;not null;index" json:"date_received"`
	CurrentStatus             string  `gorm:"size:50;not null" json:"current_status"`
	DateDispatched            *string `gorm:"size:30;index" json:"date_dispatched"`
	ReceivedByUserID          uint    `gorm:"not null" json:"received_by_user_id"`
	ReceivedBySignaturePath   string  `gorm:"size:255;not null" json:"received_by_signature_path"`
	DispatchedByUserID        *uint   `gorm:"index" json:"dispatched_by_user_id"`
	DispatchedBySignaturePath *string `gorm:"size:255" json:"dispatched_by_signature_path"`

	// Relations
	ReceivedBy   *User `gorm:"foreignKey:ReceivedByUserID" json:"received_by,omitempty"`
	DispatchedBy *User `gorm:"foreignKey:DispatchedByUserID" json:"dispatched_by,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}

// IsDispatched reports whether the asset has left the Active state
func (a *Asset) IsDispatched() bool {
	return a.DispatchedByUserID != nil
}

// AssetResponse DTO - the columns the tracking tables display
type AssetResponse struct {
	ID             uint    `json:"id"`
	TrackingID     string  `json:"tracking_id"`
	AssetName      string  `json:"asset_name"`
	AssetCode      string  `json:"asset_code"`
	SerialNumber   string  `json:"serial_number"`
	BranchName     string  `json:"branch_name"`
	DateReceived   string  `json:"date_received"`
	CurrentStatus  string  `json:"current_status"`
	DateDispatched *string `json:"date_dispatched,omitempty"`
	ReceivedBy     string  `json:"received_by,omitempty"`
	DispatchedBy   string  `json:"dispatched_by,omitempty"`
}

func (a *Asset) ToResponse() *AssetResponse {
	resp := &AssetResponse{
		ID:             a.ID,
		TrackingID:     a.TrackingID,
		AssetName:      a.AssetName,
		AssetCode:      a.AssetCode,
		SerialNumber:   a.SerialNumber,
		BranchName:     a.BranchName,
		DateReceived:   a.DateReceived,
		CurrentStatus:  a.CurrentStatus,
		DateDispatched: a.DateDispatched,
	}

	if a.ReceivedBy != nil {
		resp.ReceivedBy = a.ReceivedBy.Username
	}
	if a.DispatchedBy != nil {
		resp.DispatchedBy = a.DispatchedBy.Username
	}

	return resp
}

// AssetDetailResponse DTO - the details dialog view, signatures included
type AssetDetailResponse struct {
	AssetResponse
	ReceivedBySignaturePath   string  `json:"received_by_signature_path"`
	DispatchedBySignaturePath *string `json:"dispatched_by_signature_path,omitempty"`
}

func (a *Asset) ToDetailResponse() *AssetDetailResponse {
	return &AssetDetailResponse{
		AssetResponse:             *a.ToResponse(),
		ReceivedBySignaturePath:   a.ReceivedBySignaturePath,
		DispatchedBySignaturePath: a.DispatchedBySignaturePath,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Asset{},
	)
}
