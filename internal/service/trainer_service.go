package service

import (
	"errors"
	"strings"

	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/repository"
	"skilltrack_backend/internal/util"

	"gorm.io/gorm"
)

type TrainerService struct {
	TrainerRepo *repository.TrainerRepository
}

func NewTrainerService(trainerRepo *repository.TrainerRepository) *TrainerService {
	return &TrainerService{TrainerRepo: trainerRepo}
}

// GetOrCreate 用户首次执行培训师操作时惰性建档。
// user_id 上的唯一索引兜底并发首次调用：写入撞上约束时改读对方已建的档案
func (s *TrainerService) GetOrCreate(userID, defaultName string) (*model.Trainer, error) {
	trainer, err := s.TrainerRepo.FindByUserID(userID)
	if err == nil {
		return trainer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(defaultName)
	if name == "" {
		name = "Trainer"
	}
	// 邮箱当用户名传进来时只留前缀
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}

	trainer = &model.Trainer{
		Name:   name,
		Status: model.TrainerActive,
		UserID: &userID,
	}
	if cerr := s.TrainerRepo.Create(trainer); cerr != nil {
		if existing, ferr := s.TrainerRepo.FindByUserID(userID); ferr == nil {
			return existing, nil
		}
		return nil, cerr
	}
	return trainer, nil
}

func (s *TrainerService) List(search string) ([]model.Trainer, error) {
	return s.TrainerRepo.FindAll(search)
}

// Add 管理员按名称登记培训师档案，不绑定账号（遗留的按名称指派由此而来）
func (s *TrainerService) Add(name string) (*model.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.ErrNameRequired
	}
	trainer := &model.Trainer{
		Name:   name,
		Status: model.TrainerActive,
	}
	if err := s.TrainerRepo.Create(trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// Update 管理员或培训师本人修改档案；无权限时与不存在同样报 not found
func (s *TrainerService) Update(actor Actor, trainerID, name string, status model.TrainerStatus) (*model.Trainer, error) {
	trainer, err := s.TrainerRepo.FindByID(trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainerNotFound
		}
		return nil, err
	}

	if actor.Role != model.RoleAdmin && (trainer.UserID == nil || *trainer.UserID != actor.UserID) {
		return nil, util.ErrTrainerNotFound
	}

	if name = strings.TrimSpace(name); name != "" {
		trainer.Name = name
	}
	if status == model.TrainerActive || status == model.TrainerInactive {
		trainer.Status = status
	}

	if err := s.TrainerRepo.Update(trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}
