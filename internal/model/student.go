package model

import "time"

// Dormitory rooms inside a block.
const (
	RoomA = "A"
	RoomB = "B"
)

// Student is the dormitory profile of a student account. The SUW counter
// accumulates volunteer-hour credit and is never stored below zero.
type Student struct {
	ID        uint      `gorm:"primaryKey"                        json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex"              json:"user_id"`
	DateBirth time.Time `gorm:"type:date;not null"                json:"date_birth"`
	BlockID   *uint     `json:"block_id,omitempty"`
	Room      string    `gorm:"type:varchar(1);not null;default:'A'" json:"room"`
	Photo     string    `gorm:"type:varchar(255)"                 json:"photo,omitempty"`
	Suw       int       `gorm:"not null;default:0"                json:"suw"`

	User  *User  `gorm:"foreignKey:UserID;references:ID"  json:"user,omitempty"`
	Block *Block `gorm:"foreignKey:BlockID;references:ID" json:"block,omitempty"`
}

// TableName sets the table name.
func (Student) TableName() string { return "students" }
