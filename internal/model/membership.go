package model

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

func (r MemberRole) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// CanManage reports whether the role may administer members and invites.
func (r MemberRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

func (r MemberRole) IsOwner() bool { return r == RoleOwner }

// ProjectMembership rows are hard-deleted so the composite unique index
// always reflects live membership.
type ProjectMembership struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"not null;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_project_user;index" json:"user_id"`
	Role      MemberRole `gorm:"type:varchar(16);not null;default:'MEMBER'" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMembership) TableName() string { return "project_memberships" }
