package news

import (
	"strings"

	"github.com/hillcrest-academy/core/internal/models"
	"github.com/hillcrest-academy/core/internal/pkg/pagination"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Tag         string `json:"tag"`
	Author      string `json:"author"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateInput struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Slug        *string `json:"slug"`
	ImageURL    *string `json:"imageUrl"`
	Tag         *string `json:"tag"`
	Author      *string `json:"author"`
	IsPublished *bool   `json:"isPublished"`
}

type ListQuery struct {
	Tag           string
	PublishedOnly bool
}

func (s *Service) List(q ListQuery, pq pagination.Params) ([]models.NewsModel, response.Pagination, error) {
	query := s.db.Model(&models.NewsModel{})
	if q.Tag != "" {
		query = query.Where("tag = ?", q.Tag)
	}
	if q.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	query = query.Order("created_at DESC")

	var items []models.NewsModel
	page, err := pagination.Paginate(query, pq, &items)
	return items, page, err
}

// GetByIdentifier looks up by id first, then falls back to slug.
func (s *Service) GetByIdentifier(identifier string) (*models.NewsModel, error) {
	var item models.NewsModel
	err := s.db.First(&item, "id = ?", identifier).Error
	if err == nil {
		return &item, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := s.db.First(&item, "slug = ?", identifier).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a news post. Slug uniqueness is enforced by the database
// constraint; a duplicate surfaces as a write error.
func (s *Service) Create(input CreateInput) (*models.NewsModel, error) {
	item := &models.NewsModel{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Slug:     strings.TrimSpace(input.Slug),
		ImageURL: strings.TrimSpace(input.ImageURL),
		Tag:      strings.TrimSpace(input.Tag),
		Author:   strings.TrimSpace(input.Author),
	}
	if input.IsPublished != nil {
		item.IsPublished = *input.IsPublished
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(id string, input UpdateInput) (*models.NewsModel, error) {
	var item models.NewsModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Slug != nil {
		updates["slug"] = strings.TrimSpace(*input.Slug)
	}
	if input.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*input.ImageURL)
	}
	if input.Tag != nil {
		updates["tag"] = strings.TrimSpace(*input.Tag)
	}
	if input.Author != nil {
		updates["author"] = strings.TrimSpace(*input.Author)
	}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}

	if len(updates) == 0 {
		return &item, nil
	}
	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.NewsModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
