package repository

import (
	"skilltrack_backend/internal/model"

	"gorm.io/gorm"
)

type TrainerRepository struct {
	DB *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{DB: db}
}

func (r *TrainerRepository) Create(trainer *model.Trainer) error {
	return r.DB.Create(trainer).Error
}

func (r *TrainerRepository) FindByID(id string) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.DB.First(&trainer, "id = ?", id).Error
	return &trainer, err
}

func (r *TrainerRepository) FindByUserID(userID string) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.DB.Where("user_id = ?", userID).First(&trainer).Error
	return &trainer, err
}

// FindAll 可选按名称模糊过滤
func (r *TrainerRepository) FindAll(search string) ([]model.Trainer, error) {
	var trainers []model.Trainer
	q := r.DB.Model(&model.Trainer{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	err := q.Order("created_at").Find(&trainers).Error
	return trainers, err
}

func (r *TrainerRepository) Update(trainer *model.Trainer) error {
	return r.DB.Save(trainer).Error
}
