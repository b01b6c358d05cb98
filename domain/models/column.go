package models

import "time"

type Column struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time

	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

func (Column) TableName() string {
	return "board_columns"
}
