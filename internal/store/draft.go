package store

import (
	"encoding/json"

	"portal-backend/internal/models"

	"gorm.io/gorm"
)

type DraftStore struct{ db *gorm.DB }

func NewDraftStore(db *gorm.DB) *DraftStore { return &DraftStore{db: db} }

func (s *DraftStore) GetByOwner(email string) (*models.InquiryDraft, error) {
	var d models.InquiryDraft
	if err := s.db.Where("owner_email = ?", email).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DraftStore) Save(d *models.InquiryDraft) error {
	return s.db.Save(d).Error
}

func (s *DraftStore) Delete(d *models.InquiryDraft) error {
	return s.db.Delete(d).Error
}

// DraftItems decodes the JSON rows of a draft. A draft with no stored rows
// yields an empty slice.
func DraftItems(d *models.InquiryDraft) ([]models.InquiryItem, error) {
	if d.Items == "" {
		return []models.InquiryItem{}, nil
	}
	var items []models.InquiryItem
	if err := json.Unmarshal([]byte(d.Items), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetDraftItems encodes rows back onto the draft.
func SetDraftItems(d *models.InquiryDraft, items []models.InquiryItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	d.Items = string(b)
	return nil
}
