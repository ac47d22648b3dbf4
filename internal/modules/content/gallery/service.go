package gallery

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
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Category    string `json:"category"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

type ListQuery struct {
	Category      string
	PublishedOnly bool
}

func (s *Service) List(q ListQuery, pq pagination.Params) ([]models.GalleryModel, response.Pagination, error) {
	query := s.db.Model(&models.GalleryModel{})
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	query = query.Order("created_at DESC")

	var items []models.GalleryModel
	page, err := pagination.Paginate(query, pq, &items)
	return items, page, err
}

func (s *Service) Get(id string) (*models.GalleryModel, error) {
	var item models.GalleryModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(input CreateInput) (*models.GalleryModel, error) {
	item := &models.GalleryModel{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Category:    strings.TrimSpace(input.Category),
	}
	if input.IsPublished != nil {
		item.IsPublished = *input.IsPublished
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(id string, input UpdateInput) (*models.GalleryModel, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*input.ImageURL)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}

	if len(updates) == 0 {
		return item, nil
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.GalleryModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
