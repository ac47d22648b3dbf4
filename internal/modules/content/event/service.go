package event

import (
	"strings"
	"time"

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
	Title              string    `json:"title" binding:"required"`
	Date               time.Time `json:"date" binding:"required"`
	Description        string    `json:"description"`
	ExpectedAttendance *int      `json:"expectedAttendance"`
	Location           string    `json:"location"`
	Slug               string    `json:"slug" binding:"required"`
	ImageURL           string    `json:"imageUrl"`
}

type UpdateInput struct {
	Title              *string    `json:"title"`
	Date               *time.Time `json:"date"`
	Description        *string    `json:"description"`
	ExpectedAttendance *int       `json:"expectedAttendance"`
	Location           *string    `json:"location"`
	Slug               *string    `json:"slug"`
	ImageURL           *string    `json:"imageUrl"`
}

func (s *Service) List(upcomingOnly bool, pq pagination.Params) ([]models.EventModel, response.Pagination, error) {
	query := s.db.Model(&models.EventModel{})
	if upcomingOnly {
		query = query.Where("date >= ?", time.Now()).Order("date ASC")
	} else {
		query = query.Order("date DESC")
	}

	var items []models.EventModel
	page, err := pagination.Paginate(query, pq, &items)
	return items, page, err
}

func (s *Service) GetByIdentifier(identifier string) (*models.EventModel, error) {
	var item models.EventModel
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

func (s *Service) Create(input CreateInput) (*models.EventModel, error) {
	item := &models.EventModel{
		Title:              strings.TrimSpace(input.Title),
		Date:               input.Date,
		Description:        input.Description,
		ExpectedAttendance: input.ExpectedAttendance,
		Location:           strings.TrimSpace(input.Location),
		Slug:               strings.TrimSpace(input.Slug),
		ImageURL:           strings.TrimSpace(input.ImageURL),
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(id string, input UpdateInput) (*models.EventModel, error) {
	var item models.EventModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ExpectedAttendance != nil {
		updates["expected_attendance"] = *input.ExpectedAttendance
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.Slug != nil {
		updates["slug"] = strings.TrimSpace(*input.Slug)
	}
	if input.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*input.ImageURL)
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
	res := s.db.Delete(&models.EventModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
