package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileLikeModel is the GORM-specific struct for the 'profile_likes' table.
// One row records that LikerID likes LikeeID's profile; the reverse direction
// ("liked by") is derived by querying the same table on the other column.
type ProfileLikeModel struct {
	LikerID   uuid.UUID `gorm:"type:uuid;primary_key"`
	LikeeID   uuid.UUID `gorm:"type:uuid;primary_key;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileLikeModel) TableName() string {
	return "profile_likes"
}
