package model

import (
	"github.com/agrigouv/pspc/pkg/common"
	"github.com/agrigouv/pspc/pkg/common/uuid"
)

type User struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string         `gorm:"not null;uniqueIndex" json:"email"`
	Password string         `gorm:"not null" json:"-"`
	Role     common.Role    `gorm:"not null" json:"role"`
	Region   *common.Region `json:"region,omitempty"`
}

func (*User) TableName() string {
	return "users"
}

func (u *User) HasPermission(p common.Permission) bool {
	return u.Role.HasPermission(p)
}

// UserInfos is the public projection of a user returned by the API.
type UserInfos struct {
	Email  string         `json:"email"`
	Role   common.Role    `json:"role"`
	Region *common.Region `json:"region,omitempty"`
}

func (u *User) Infos() UserInfos {
	return UserInfos{Email: u.Email, Role: u.Role, Region: u.Region}
}
