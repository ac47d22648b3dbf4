package models

import "time"

// EventModel is a school event announcement.
type EventModel struct {
	Base
	Title              string    `json:"title"       gorm:"not null"`
	Date               time.Time `json:"date"        gorm:"index;not null"`
	Description        string    `json:"description" gorm:"type:longtext"`
	ExpectedAttendance *int      `json:"expectedAttendance"`
	Location           string    `json:"location"    gorm:"not null"`
	Slug               string    `json:"slug"        gorm:"uniqueIndex;not null"`
	ImageURL           string    `json:"imageUrl"`
}

func (EventModel) TableName() string { return "events" }
