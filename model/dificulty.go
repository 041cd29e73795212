package model

import "time"

// Dificulty is a numeric difficulty level shared by skills.
type Dificulty struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Skills []Skill `gorm:"foreignKey:DificultyID" json:"-"`
}

// Overlay copies the editable fields of src onto d.
func (d *Dificulty) Overlay(src *Dificulty) {
	d.Value = src.Value
}
