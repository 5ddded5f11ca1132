package model

import (
	"time"

	"github.com/google/uuid"
)

// LinkIDLength is the length of the public invite link identifier.
const LinkIDLength = 6

// LinkIDAlphabet is the character set link identifiers are drawn from.
const LinkIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Invite is a time/use-bounded join token for a project. A nil MaxUses means
// unlimited uses; a nil ExpiresAt means the invite never expires. Exhaustion
// and expiry are computed states, never stored.
type Invite struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	LinkID      string     `gorm:"type:varchar(12);uniqueIndex;not null" json:"link_id"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_id"`
	MaxUses     *int       `json:"max_uses,omitempty"`
	Uses        int        `gorm:"not null;default:0" json:"uses"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Invite) TableName() string { return "invites" }

// ExpiredAt reports whether the invite is past its expiry at the given time.
func (i *Invite) ExpiredAt(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Exhausted reports whether the invite has reached its use cap.
func (i *Invite) Exhausted() bool {
	return i.MaxUses != nil && i.Uses >= *i.MaxUses
}
