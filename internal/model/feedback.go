package model

// Feedback 针对某一资料版本的不可变评论，评分可空
// swagger:model Feedback
type Feedback struct {
	BaseModel
	DocumentationID string `gorm:"type:varchar(36);not null;index" json:"documentationId"`
	Comments        string `gorm:"type:text;not null" json:"comments"`
	Rating          *int   `json:"rating"`
}

func (Feedback) TableName() string {
	return "feedback"
}
