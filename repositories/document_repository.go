package repositories

import (
	"returns-app/models"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists the document with its frozen lines in one transaction and
// stamps document_no onto the covered records so they regroup under it.
func (r *DocumentRepository) Create(document *models.ReturnDocument, recordNos []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(document).Error; err != nil {
			return err
		}
		if len(recordNos) == 0 {
			return nil
		}
		return tx.Model(&models.ReturnRecord{}).
			Where("record_no IN ?", recordNos).
			Update("document_no", document.DocumentNo).Error
	})
}

func (r *DocumentRepository) List() ([]models.ReturnDocument, error) {
	var documents []models.ReturnDocument
	if err := r.db.Preload("Lines").Order("id DESC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *DocumentRepository) GetByNo(documentNo string) (*models.ReturnDocument, error) {
	var document models.ReturnDocument
	if err := r.db.Preload("Lines").First(&document, "document_no = ?", documentNo).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// GenerateDocumentNo issues DOC<yymmdd><seq>.
func (r *DocumentRepository) GenerateDocumentNo() (string, error) {
	helper := NewReturnRepository(r.db)
	return helper.generateRunningNo(&models.ReturnDocument{}, "document_no", "DOC")
}
