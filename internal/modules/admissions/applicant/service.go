package applicant

import (
	"errors"
	"strings"

	"github.com/hillcrest-academy/core/internal/models"
	"github.com/hillcrest-academy/core/internal/pkg/pagination"
	"github.com/hillcrest-academy/core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	ErrDuplicateApplicant = errors.New("an application with this name already exists, please contact the school directly")
	ErrInvalidStatus      = errors.New("invalid applicant status")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Name               string `json:"name" binding:"required"`
	PhoneNumber        string `json:"phoneNumber" binding:"required"`
	Email              string `json:"email"`
	GradeApplying      string `json:"gradeApplying"`
	GuardianName       string `json:"guardianName"`
	GuardianPhone      string `json:"guardianPhone"`
	ParentOccupation   string `json:"parentOccupation"`
	HasSiblingEnrolled bool   `json:"hasSiblingEnrolled"`
	SiblingName        string `json:"siblingName"`
	ReferralSource     string `json:"referralSource"`
}

type UpdateInput struct {
	Status *string `json:"status"`
}

func (s *Service) List(status string, pq pagination.Params) ([]models.ApplicantModel, response.Pagination, error) {
	query := s.db.Model(&models.ApplicantModel{})
	if status != "" {
		if !models.ValidApplicantStatus(status) {
			return nil, response.Pagination{}, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}
	query = query.Order("created_at DESC")

	var items []models.ApplicantModel
	page, err := pagination.Paginate(query, pq, &items)
	return items, page, err
}

func (s *Service) Get(id string) (*models.ApplicantModel, error) {
	var item models.ApplicantModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create registers an applicant. The duplicate check is case-insensitive on
// the applicant name and runs in the same transaction as the insert.
func (s *Service) Create(input CreateInput) (*models.ApplicantModel, error) {
	name := strings.TrimSpace(input.Name)

	item := &models.ApplicantModel{
		Name:               name,
		PhoneNumber:        strings.TrimSpace(input.PhoneNumber),
		Email:              strings.TrimSpace(input.Email),
		GradeApplying:      strings.TrimSpace(input.GradeApplying),
		GuardianName:       strings.TrimSpace(input.GuardianName),
		GuardianPhone:      strings.TrimSpace(input.GuardianPhone),
		ParentOccupation:   strings.TrimSpace(input.ParentOccupation),
		HasSiblingEnrolled: input.HasSiblingEnrolled,
		SiblingName:        strings.TrimSpace(input.SiblingName),
		ReferralSource:     strings.TrimSpace(input.ReferralSource),
		Status:             models.ApplicantStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ApplicantModel{}).
			Where("LOWER(name) = LOWER(?)", name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplicant
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateStatus moves the applicant through the review pipeline.
func (s *Service) UpdateStatus(id string, input UpdateInput) (*models.ApplicantModel, error) {
	if input.Status == nil {
		return s.Get(id)
	}
	status := strings.ToLower(strings.TrimSpace(*input.Status))
	if !models.ValidApplicantStatus(status) {
		return nil, ErrInvalidStatus
	}

	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(item).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.ApplicantModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
