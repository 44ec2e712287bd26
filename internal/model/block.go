package model

// Block is a dormitory building/wing grouping.
// Its slug ("block-<number>") is assigned at first save and never changes.
type Block struct {
	ID     uint   `gorm:"primaryKey"                        json:"id"`
	Number int    `gorm:"not null"                          json:"number"`
	Slug   string `gorm:"type:varchar(16);not null;unique"  json:"slug"`
}

// TableName sets the table name.
func (Block) TableName() string { return "blocks" }
