package image

import (
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hillcrest-academy/core/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTitleTaken        = errors.New("an image with this title already exists")
	ErrLastDefaultImage  = errors.New("cannot delete the only remaining image while it is the default")
	ErrNoDefaultImage    = errors.New("no default image configured")
	ErrUnsetDefault      = errors.New("cannot unset the default image, promote another image instead")
	ErrInvalidUsageField = errors.New("usedAt must be an array of usage ids, a JSON-encoded array, or a comma-separated string")
)

type Service struct {
	db         *gorm.DB
	uploadsDir string
}

func NewService(db *gorm.DB, uploadsDir string) *Service {
	return &Service{db: db, uploadsDir: uploadsDir}
}

// List returns all images in insertion order.
func (s *Service) List() ([]models.ImageModel, error) {
	var images []models.ImageModel
	err := s.db.Order("created_at ASC").Find(&images).Error
	return images, err
}

func (s *Service) Get(id string) (*models.ImageModel, error) {
	var img models.ImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// Default returns the current default image.
func (s *Service) Default() (*models.ImageModel, error) {
	var img models.ImageModel
	err := s.db.First(&img, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoDefaultImage
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Create records an uploaded file. The first image in an empty library
// becomes the default.
func (s *Service) Create(title, imageURL, mimeType string, fileSize int64) (*models.ImageModel, error) {
	title = strings.TrimSpace(title)

	img := &models.ImageModel{
		Title:    title,
		ImageURL: imageURL,
		FileSize: fileSize,
		MimeType: mimeType,
		UsedAt:   models.UsageList{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ImageModel{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTitleTaken
		}

		var total int64
		if err := tx.Model(&models.ImageModel{}).Count(&total).Error; err != nil {
			return err
		}
		img.IsDefault = total == 0

		return tx.Create(img).Error
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// UpdateInput carries a PATCH body. UsedAt stays raw so the service can
// accept the three shapes clients historically send.
type UpdateInput struct {
	Title     *string         `json:"title"`
	UsedAt    json.RawMessage `json:"usedAt"`
	IsDefault *bool           `json:"isDefault"`
}

// Update applies metadata changes. Promoting an image to default clears the
// previous default flag in the same transaction.
func (s *Service) Update(id string, input UpdateInput) (*models.ImageModel, error) {
	var usedAt models.UsageList
	var hasUsedAt bool
	if len(input.UsedAt) > 0 && string(input.UsedAt) != "null" {
		var ok bool
		usedAt, ok = models.NormalizeUsedAt(input.UsedAt)
		if !ok {
			return nil, ErrInvalidUsageField
		}
		hasUsedAt = true
	}

	var img models.ImageModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&img, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = strings.TrimSpace(*input.Title)
		}
		if hasUsedAt {
			updates["used_at"] = usedAt
		}
		if input.IsDefault != nil {
			// Clearing the flag on the current default would leave a
			// non-empty library without one; the flag moves only by
			// promoting another image.
			if !*input.IsDefault && img.IsDefault {
				return ErrUnsetDefault
			}
			if *input.IsDefault && !img.IsDefault {
				if err := tx.Model(&models.ImageModel{}).
					Where("is_default = ?", true).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			updates["is_default"] = *input.IsDefault
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&img).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&img, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Replace swaps the backing file of an existing image, keeping its id,
// usage list, and default flag.
func (s *Service) Replace(id, imageURL, mimeType string, fileSize int64) (*models.ImageModel, error) {
	var img models.ImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		return nil, err
	}

	oldURL := img.ImageURL
	updates := map[string]interface{}{
		"image_url": imageURL,
		"file_size": fileSize,
		"mime_type": mimeType,
	}
	if err := s.db.Model(&img).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.removeFile(oldURL)

	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// Delete removes an image. The sole remaining image cannot be deleted while
// it is the default. Deleting the default promotes the oldest remaining
// image by createdAt in the same transaction.
func (s *Service) Delete(id string) error {
	var fileURL string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var img models.ImageModel
		if err := tx.First(&img, "id = ?", id).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.ImageModel{}).Count(&total).Error; err != nil {
			return err
		}
		if img.IsDefault && total == 1 {
			return ErrLastDefaultImage
		}

		if err := tx.Delete(&img).Error; err != nil {
			return err
		}

		if img.IsDefault {
			var oldest models.ImageModel
			if err := tx.Order("created_at ASC").First(&oldest).Error; err != nil {
				return err
			}
			if err := tx.Model(&oldest).Update("is_default", true).Error; err != nil {
				return err
			}
		}

		fileURL = img.ImageURL
		return nil
	})
	if err != nil {
		return err
	}

	s.removeFile(fileURL)
	return nil
}

// removeFile deletes the backing file for locally stored images. Missing
// files are ignored.
func (s *Service) removeFile(imageURL string) {
	if s.uploadsDir == "" {
		return
	}
	name := path.Base(imageURL)
	if !strings.HasPrefix(imageURL, "/uploads/") || name == "." || name == "/" {
		return
	}
	_ = os.Remove(filepath.Join(s.uploadsDir, name))
}
