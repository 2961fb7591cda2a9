package catalog

import (
	"portal-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ManualAccountID is the sentinel account for customers entered by hand.
const ManualAccountID = "NEW"

var masterItems = []models.MasterItem{
	{Code: "01305-09000010", Desc: "JOINT KIT,STR,PM,15KV,3X500/35MM2,AL (SEC Item#908121150)"},
	{Code: "01305-10000013", Desc: "ELBOW,EC,15KV,400A,1X50/16MM2 (SEC Item#908121037)"},
	{Code: "01305-37000001", Desc: "Elbow-24kV-250A-EBDC-INTF A-1Cx95-120-CW16mm2"},
	{Code: "01305-37000003", Desc: "Elbow- 24kV-630A-EBTC-INTF C-1Cx70-150-CW16mm2"},
	{Code: "01305-40000120", Desc: "TERMINATION KIT,OUTDOOR,36KV,1X630MM2"},
	{Code: "01305-40000125", Desc: "TERMINATION KIT,INDOOR,36KV,1X630MM2"},
}

var customerAccounts = []models.CustomerAccount{
	{AccountID: "03/IC/00006", Name: "MEMF Power Transformer Industrial CO."},
	{AccountID: "03/IC/00002", Name: "META Electric Company"},
	{AccountID: ManualAccountID, Name: "OTHER (Add Manually)"},
}

var engineers = []models.Engineer{
	{Name: "Feroz Khan"},
	{Name: "Nitin Derekar"},
	{Name: "Faisal Jamal"},
}

// Seed loads the reference tables. Idempotent; existing rows are left alone.
func Seed(db *gorm.DB) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&masterItems).Error; err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&customerAccounts).Error; err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&engineers).Error
}

// Store looks up reference data. It never validates that a submitted code
// exists; callers only use it to pre-fill descriptions.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Find returns the canonical description for a product code.
func (s *Store) Find(code string) (string, bool) {
	var item models.MasterItem
	if err := s.db.First(&item, "code = ?", code).Error; err != nil {
		return "", false
	}
	return item.Desc, true
}

// FindAccount returns a customer account by its id.
func (s *Store) FindAccount(accountID string) (*models.CustomerAccount, bool) {
	var acct models.CustomerAccount
	if err := s.db.First(&acct, "account_id = ?", accountID).Error; err != nil {
		return nil, false
	}
	return &acct, true
}
