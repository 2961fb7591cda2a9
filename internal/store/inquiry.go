package store

import (
	"fmt"
	"strings"

	"portal-backend/internal/models"

	"gorm.io/gorm"
)

// InquiryFilter narrows a listing. Zero-value fields are ignored, so the
// empty filter returns everything.
type InquiryFilter struct {
	OwnerEmail string // exact match on the creating Sales user
	Engineer   string // case-insensitive match on the assigned engineer
	Query      string // case-insensitive substring over reference or customer name
}

type InquiryStore struct{ db *gorm.DB }

func NewInquiryStore(db *gorm.DB) *InquiryStore { return &InquiryStore{db: db} }

// Create allocates the next reference number from the monotonic sequence and
// persists the inquiry in the same transaction.
func (s *InquiryStore) Create(series string, inq *models.Inquiry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InquirySequence{}).Where("id = ?", 1).
			UpdateColumn("next_seq", gorm.Expr("next_seq + 1")).Error; err != nil {
			return err
		}
		var seq models.InquirySequence
		if err := tx.First(&seq, 1).Error; err != nil {
			return err
		}
		inq.Reference = fmt.Sprintf("%s/%05d", series, seq.NextSeq-1)
		return tx.Create(inq).Error
	})
}

func (s *InquiryStore) Get(id uint) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := s.preloaded().First(&inq, id).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

func (s *InquiryStore) GetByReference(ref string) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := s.preloaded().Where("reference = ?", ref).First(&inq).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

// List returns matching inquiries most-recent-first.
func (s *InquiryStore) List(f InquiryFilter) ([]models.Inquiry, error) {
	q := s.preloaded()
	if f.OwnerEmail != "" {
		q = q.Where("owner_email = ?", f.OwnerEmail)
	}
	if f.Engineer != "" {
		q = q.Where("LOWER(assigned_eng) = LOWER(?)", f.Engineer)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(reference) LIKE ? OR LOWER(cust_name) LIKE ?", like, like)
	}

	var out []models.Inquiry
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields (assigned engineer and items) of the
// stored record. Reference, owner and creation timestamp are never touched;
// status changes go through SetStatus. Last write wins.
func (s *InquiryStore) Update(inq *models.Inquiry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Inquiry{}).Where("id = ?", inq.ID).
			Update("assigned_eng", inq.AssignedEng)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("inquiry_id = ?", inq.ID).Delete(&models.InquiryItem{}).Error; err != nil {
			return err
		}
		for i := range inq.Items {
			inq.Items[i].ID = 0
			inq.Items[i].InquiryID = inq.ID
			inq.Items[i].Position = i
		}
		if len(inq.Items) > 0 {
			if err := tx.Create(&inq.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *InquiryStore) SetStatus(id uint, status models.InquiryStatus) error {
	res := s.db.Model(&models.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *InquiryStore) preloaded() *gorm.DB {
	return s.db.Model(&models.Inquiry{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Docs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}
