package model

import "time"

// Worker posts.
const (
	PostAdmin       = "ADMIN"
	PostStudCouncil = "COUNCIL"
)

// Worker is the staff profile of a worker account.
type Worker struct {
	ID        uint      `gorm:"primaryKey"                                 json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex"                       json:"user_id"`
	Post      string    `gorm:"type:varchar(20);not null;default:'COUNCIL'" json:"post"`
	DateBirth time.Time `gorm:"type:date;not null"                         json:"date_birth"`
	Photo     string    `gorm:"type:varchar(255)"                          json:"photo,omitempty"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Worker) TableName() string { return "workers" }
