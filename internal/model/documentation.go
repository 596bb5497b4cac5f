package model

import "time"

type DocumentationStatus string

const (
	DocPending  DocumentationStatus = "Pending"
	DocApproved DocumentationStatus = "Approved"
	DocRejected DocumentationStatus = "Rejected"
)

// Documentation 课程资料的一个已提交版本
// 同一课程的 RevisionNumber 严格递增且唯一（联合唯一索引兜底并发写入），
// 最大者为当前版本
// FilePath 仅在接受课程时创建的占位记录中允许为空
// swagger:model Documentation
type Documentation struct {
	UUIDBase
	CourseID       string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_doc_course_rev" json:"courseId"`
	FilePath       string              `gorm:"size:255" json:"filePath"`
	Status         DocumentationStatus `gorm:"size:50;default:'Pending';index" json:"status"`
	RevisionNumber int                 `gorm:"not null;default:1;uniqueIndex:idx_doc_course_rev" json:"revisionNumber"`
	SubmittedAt    time.Time           `json:"submittedAt"`
	ApprovedAt     *time.Time          `json:"approvedAt"`
	RejectedAt     *time.Time          `json:"rejectedAt"`
}

func (Documentation) TableName() string {
	return "documentation"
}
