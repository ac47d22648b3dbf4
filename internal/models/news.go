package models

// NewsModel is a published news article. Slug uniqueness is enforced by the
// database; the caller supplies the slug and the server never regenerates it.
type NewsModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Content     string `json:"content"     gorm:"type:longtext"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	ImageURL    string `json:"imageUrl"`
	Tag         string `json:"tag"         gorm:"index"`
	Author      string `json:"author"`
	IsPublished bool   `json:"isPublished" gorm:"default:false;index"`
}

func (NewsModel) TableName() string { return "news" }
