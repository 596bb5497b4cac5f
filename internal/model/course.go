package model

import "time"

type CourseStatus string

const (
	CourseRequested CourseStatus = "Requested"
	CourseInReview  CourseStatus = "In Review"
	CourseApproved  CourseStatus = "Approved"
	CourseRejected  CourseStatus = "Rejected"
	CourseCompleted CourseStatus = "Completed"
)

// Course 审批流程的中心实体
// 不变式：除 Requested 外的任何状态下 TrainerID 均不为空（在接受时绑定）
// swagger:model Course
type Course struct {
	UUIDBase
	Title            string       `gorm:"size:200;not null" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	Status           CourseStatus `gorm:"size:50;default:'Requested';index" json:"status"`
	ScheduledTime    *time.Time   `json:"scheduledTime"`
	UserID           string       `gorm:"type:varchar(36);not null;index" json:"userId"`
	TrainerID        *string      `gorm:"type:varchar(36);index" json:"trainerId"`
	CompletionReport string       `gorm:"type:text" json:"completionReport"`
}

func (Course) TableName() string {
	return "courses"
}
