package entities

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name    string    `gorm:"type:varchar(100);not null" json:"name"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`

	Owner   *User          `gorm:"foreignKey:OwnerID"`
	Members []*GroupMember `gorm:"foreignKey:GroupID"`
	Timestamp
}

type GroupMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GroupID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_group_member;not null" json:"group_id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_group_member;not null" json:"user_id"`
	Role     string    `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `gorm:"type:timestamp" json:"joined_at"`

	Group *Group `gorm:"foreignKey:GroupID"`
	User  *User  `gorm:"foreignKey:UserID"`
}
