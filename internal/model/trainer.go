package model

type TrainerStatus string

const (
	TrainerActive   TrainerStatus = "Active"
	TrainerInactive TrainerStatus = "Inactive"
)

// Trainer 培训师档案。UserID 绑定账号，唯一索引保证一个账号至多一份档案，
// 首次执行培训师操作时惰性创建；管理员按名称登记的旧式档案不绑定账号
// （UserID 为空），靠名称匹配进入对应培训师的队列。只停用，不做物理删除
// swagger:model Trainer
type Trainer struct {
	UUIDBase
	Name   string        `gorm:"size:100;not null" json:"name"`
	Status TrainerStatus `gorm:"size:50;default:'Active'" json:"status"`
	UserID *string       `gorm:"type:varchar(36);uniqueIndex" json:"userId"`
}

func (Trainer) TableName() string {
	return "trainers"
}
