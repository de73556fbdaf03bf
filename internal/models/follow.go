package models

import "time"

// Follow is a directed edge: UserFollowingID follows UserBeingFollowedID.
// The composite primary key allows at most one edge per ordered pair.
type Follow struct {
	UserBeingFollowedID uint64    `gorm:"primarykey;autoIncrement:false" json:"user_being_followed_id"`
	UserFollowingID     uint64    `gorm:"primarykey;autoIncrement:false;index" json:"user_following_id"`
	CreatedAt           time.Time `json:"created_at"`

	// Relations
	Followed User `gorm:"foreignKey:UserBeingFollowedID;constraint:OnDelete:CASCADE" json:"-"`
	Follower User `gorm:"foreignKey:UserFollowingID;constraint:OnDelete:CASCADE" json:"-"`
}
