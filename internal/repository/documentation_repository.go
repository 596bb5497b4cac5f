package repository

import (
	"skilltrack_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentationRepository struct {
	DB *gorm.DB
}

func NewDocumentationRepository(db *gorm.DB) *DocumentationRepository {
	return &DocumentationRepository{DB: db}
}

func (r *DocumentationRepository) Create(doc *model.Documentation) error {
	return r.DB.Create(doc).Error
}

func (r *DocumentationRepository) FindByID(id string) (*model.Documentation, error) {
	var doc model.Documentation
	err := r.DB.First(&doc, "id = ?", id).Error
	return &doc, err
}

// FindCurrentByCourse 当前版本即该课程下 revision_number 最大的记录
func (r *DocumentationRepository) FindCurrentByCourse(courseID string) (*model.Documentation, error) {
	var doc model.Documentation
	err := r.DB.Where("course_id = ?", courseID).
		Order("revision_number DESC").
		First(&doc).Error
	return &doc, err
}

func (r *DocumentationRepository) FindByCourse(courseID string) ([]model.Documentation, error) {
	var docs []model.Documentation
	err := r.DB.Where("course_id = ?", courseID).
		Order("revision_number DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentationRepository) MaxRevision(courseID string) (int, error) {
	var max int
	err := r.DB.Model(&model.Documentation{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(revision_number), 0)").
		Scan(&max).Error
	return max, err
}

// FindPendingWithFile 待审阅队列，排除从未上传文件的占位记录
func (r *DocumentationRepository) FindPendingWithFile() ([]model.Documentation, error) {
	var docs []model.Documentation
	err := r.DB.Where("status = ? AND file_path <> ''", model.DocPending).
		Order("submitted_at").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentationRepository) FindByStatus(status model.DocumentationStatus) ([]model.Documentation, error) {
	var docs []model.Documentation
	err := r.DB.Where("status = ?", status).
		Order("submitted_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *DocumentationRepository) FindLatestByCourseAndStatus(courseID string, status model.DocumentationStatus) (*model.Documentation, error) {
	var doc model.Documentation
	err := r.DB.Where("course_id = ? AND status = ?", courseID, status).
		Order("revision_number DESC").
		First(&doc).Error
	return &doc, err
}
