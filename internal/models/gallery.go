package models

// GalleryModel is a photo gallery entry.
type GalleryModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"imageUrl"    gorm:"not null"`
	Category    string `json:"category"    gorm:"index"`
	IsPublished bool   `json:"isPublished" gorm:"default:false;index"`
}

func (GalleryModel) TableName() string { return "gallery_items" }
