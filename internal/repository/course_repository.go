package repository

import (
	"skilltrack_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) CountByStatus(status model.CourseStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByStatusForOwner(status model.CourseStatus, userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("status = ? AND user_id = ?", status, userID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByStatusForTrainer(status model.CourseStatus, trainerID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("status = ? AND trainer_id = ?", status, trainerID).
		Count(&count).Error
	return count, err
}

// CountOpenRequestsForTrainer 未分配或已分配给该培训师的待接受请求数
func (r *CourseRepository) CountOpenRequestsForTrainer(trainerID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("status = ?", model.CourseRequested).
		Where("trainer_id IS NULL OR trainer_id = ?", trainerID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) FindByStatus(status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ?", status).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByStatusForOwner(status model.CourseStatus, userID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ? AND user_id = ?", status, userID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByTrainer(trainerID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("trainer_id = ?", trainerID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByTrainerAndStatuses(trainerID string, statuses []model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("trainer_id = ? AND status IN ?", trainerID, statuses).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// FindRequestQueue 培训师可见的请求队列：待接受或被驳回的课程，
// 且未分配、分配给本人，或通过旧数据的培训师名称匹配到本人（迁移兼容）
func (r *CourseRepository) FindRequestQueue(trainerID, trainerName string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Model(&model.Course{}).
		Joins("LEFT JOIN trainers ON trainers.id = courses.trainer_id").
		Where("courses.status IN ?", []model.CourseStatus{model.CourseRequested, model.CourseRejected}).
		Where("courses.trainer_id IS NULL OR courses.trainer_id = ? OR LOWER(trainers.name) = LOWER(?)",
			trainerID, trainerName).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}
