package models

// ImageModel tracks an uploaded site image and the page placements it
// serves. At most one row has IsDefault set; the first image ever created
// becomes the default automatically.
type ImageModel struct {
	Base
	Title     string    `json:"title"     gorm:"type:varchar(191);uniqueIndex;not null"`
	ImageURL  string    `json:"imageUrl"  gorm:"not null"`
	FileSize  int64     `json:"fileSize"`
	MimeType  string    `json:"mimeType"`
	UsedAt    UsageList `json:"usedAt"    gorm:"type:longtext"`
	IsDefault bool      `json:"isDefault" gorm:"default:false;index"`
}

func (ImageModel) TableName() string { return "images" }
