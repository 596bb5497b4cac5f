package repository

import (
	"skilltrack_backend/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(feedback *model.Feedback) error {
	return r.DB.Create(feedback).Error
}

func (r *FeedbackRepository) FindByDocumentation(docID string, newestFirst bool) ([]model.Feedback, error) {
	order := "created_at"
	if newestFirst {
		order = "created_at DESC"
	}
	var feedbacks []model.Feedback
	err := r.DB.Where("documentation_id = ?", docID).Order(order).Find(&feedbacks).Error
	return feedbacks, err
}

// FindByCourse 经由课程全部资料版本可达的所有反馈
func (r *FeedbackRepository) FindByCourse(courseID string) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.DB.Model(&model.Feedback{}).
		Joins("JOIN documentation ON documentation.id = feedback.documentation_id").
		Where("documentation.course_id = ?", courseID).
		Order("feedback.created_at").
		Find(&feedbacks).Error
	return feedbacks, err
}
