package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/util"
	"skilltrack_backend/pkg/logger"
	"skilltrack_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor 执行操作的已认证主体，角色随调用显式传入，不读取任何全局状态
type Actor struct {
	UserID   string
	Username string
	Role     model.UserRole
}

const (
	ReviewApprove = "approve"
	ReviewReject  = "reject"
)

// 日程时间格式，与旧版前端提交格式保持一致
var scheduleLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// WorkflowService 课程/资料状态机。每个操作在单个事务内完成
// 状态读取、守卫校验和全部关联写入，并发动作通过带状态条件的
// 更新语句串行化（RowsAffected 为 0 即守卫失效）。
type WorkflowService struct {
	DB       *gorm.DB
	Trainers *TrainerService
	Storage  *StorageService
}

func NewWorkflowService(db *gorm.DB, trainers *TrainerService, storage *StorageService) *WorkflowService {
	return &WorkflowService{
		DB:       db,
		Trainers: trainers,
		Storage:  storage,
	}
}

func recordTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.WorkflowTransitions.WithLabelValues(action, outcome).Inc()
}

func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// RequestCourse 管理员发起课程请求，初始状态 Requested；
// 可以按培训师档案预指派，但绑定要等培训师接受时才发生
func (s *WorkflowService) RequestCourse(actor Actor, title, description string, trainerID *string) (course *model.Course, err error) {
	defer func() { recordTransition("request", err) }()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, util.ErrTitleRequired
	}

	if trainerID != nil && *trainerID != "" {
		var trainer model.Trainer
		if err := s.DB.First(&trainer, "id = ?", *trainerID).Error; err != nil {
			return nil, notFoundOr(err, util.ErrTrainerNotFound)
		}
	} else {
		trainerID = nil
	}

	c := &model.Course{
		Title:       title,
		Description: description,
		Status:      model.CourseRequested,
		UserID:      actor.UserID,
		TrainerID:   trainerID,
	}
	if err := s.DB.Create(c).Error; err != nil {
		return nil, err
	}

	logger.Log.Info("course requested",
		zap.String("course_id", c.ID),
		zap.String("admin_id", actor.UserID))
	return c, nil
}

// Accept 培训师接受课程请求：Requested → In Review，绑定培训师，
// 并创建修订号为 1 的占位资料记录
func (s *WorkflowService) Accept(actor Actor, courseID string) (course *model.Course, err error) {
	defer func() { recordTransition("accept", err) }()

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", courseID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseRequested {
			return util.ErrCourseNotRequested
		}
		if c.TrainerID != nil && *c.TrainerID != trainer.ID {
			return util.ErrCourseTaken
		}

		// 状态作为更新条件，两个并发接受只有一方生效
		res := tx.Model(&model.Course{}).
			Where("id = ? AND status = ?", courseID, model.CourseRequested).
			Updates(map[string]interface{}{
				"trainer_id": trainer.ID,
				"status":     model.CourseInReview,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotRequested
		}

		doc := &model.Documentation{
			CourseID:       courseID,
			FilePath:       "",
			Status:         model.DocPending,
			RevisionNumber: 1,
			SubmittedAt:    time.Now(),
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}

		c.TrainerID = &trainer.ID
		c.Status = model.CourseInReview
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("course accepted",
		zap.String("course_id", c.ID),
		zap.String("trainer_id", trainer.ID))
	return &c, nil
}

// Decline 培训师放弃已指派给自己的请求，课程回到未分配的 Requested
func (s *WorkflowService) Decline(actor Actor, courseID string) (course *model.Course, err error) {
	defer func() { recordTransition("decline", err) }()

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ?", courseID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseRequested {
			return util.ErrCourseNotRequested
		}
		if c.TrainerID == nil || *c.TrainerID != trainer.ID {
			return util.ErrCourseTaken
		}

		res := tx.Model(&model.Course{}).
			Where("id = ? AND status = ? AND trainer_id = ?", courseID, model.CourseRequested, trainer.ID).
			Update("trainer_id", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotRequested
		}

		c.TrainerID = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Schedule 管理员为自己名下处于 In Review 的课程指定时间段，课程进入 Approved。
// 时间解析失败返回校验错误，不发生任何状态变更。
func (s *WorkflowService) Schedule(actor Actor, courseID, datetimeStr string) (course *model.Course, err error) {
	defer func() { recordTransition("schedule", err) }()

	scheduled, perr := parseScheduleTime(datetimeStr)
	if perr != nil {
		return nil, perr
	}

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ? AND user_id = ?", courseID, actor.UserID).Error; err != nil {
			// 越权访问与不存在同样报 not found，不泄露范围外的记录
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseInReview {
			return util.ErrCourseNotInReview
		}

		res := tx.Model(&model.Course{}).
			Where("id = ? AND status = ?", courseID, model.CourseInReview).
			Updates(map[string]interface{}{
				"scheduled_time": scheduled,
				"status":         model.CourseApproved,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotInReview
		}

		c.ScheduledTime = &scheduled
		c.Status = model.CourseApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("course scheduled",
		zap.String("course_id", c.ID),
		zap.Time("scheduled_time", scheduled))
	return &c, nil
}

func parseScheduleTime(datetimeStr string) (time.Time, error) {
	datetimeStr = strings.TrimSpace(datetimeStr)
	if datetimeStr == "" {
		return time.Time{}, util.ErrBadScheduleTime
	}
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, datetimeStr, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, util.ErrBadScheduleTime
}

// SubmitDocumentation 培训师上传新一版资料。文件先落存储，元数据行
// 在事务内以 max(revision)+1 写入；元数据写入失败时回收已存文件，
// 避免出现无引用的孤儿文件。
func (s *WorkflowService) SubmitDocumentation(ctx context.Context, actor Actor, courseID string, file *multipart.FileHeader) (doc *model.Documentation, err error) {
	defer func() { recordTransition("submit", err) }()

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var c model.Course
	if err := s.DB.First(&c, "id = ? AND trainer_id = ?", courseID, trainer.ID).Error; err != nil {
		return nil, notFoundOr(err, util.ErrCourseNotFound)
	}

	filename := util.SanitizeFilename(file.Filename)
	if !util.AllowedDocumentFile(filename) {
		return nil, util.ErrFileTypeNotAllowed
	}

	objectName := filepath.ToSlash(filepath.Join("docs", courseID, filename))
	filePath, err := s.Storage.SaveUpload(ctx, objectName, file)
	if err != nil {
		return nil, err
	}

	// 修订号取当前最大值加一。并发写入同一课程时由 (course_id, revision_number)
	// 唯一索引兜底：撞上约束就重读最大值再试，试尽后按冲突上报
	var newDoc *model.Documentation
	for attempt := 0; attempt < 3; attempt++ {
		doc := &model.Documentation{
			CourseID:    courseID,
			FilePath:    filePath,
			Status:      model.DocPending,
			SubmittedAt: time.Now(),
		}
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			var max int
			if err := tx.Model(&model.Documentation{}).
				Where("course_id = ?", courseID).
				Select("COALESCE(MAX(revision_number), 0)").
				Scan(&max).Error; err != nil {
				return err
			}
			doc.RevisionNumber = max + 1
			return tx.Create(doc).Error
		})
		if err == nil {
			newDoc = doc
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = util.ErrRevisionConflict
		}
		// 元数据没写成，已存文件不能留下
		if derr := s.Storage.Delete(ctx, objectName); derr != nil {
			logger.Log.Error("orphan upload cleanup failed",
				zap.String("object", objectName), zap.Error(derr))
		}
		return nil, err
	}

	return newDoc, nil
}

// Resubmit 培训师在修复后显式重新送审：Rejected → In Review，
// 最新一版资料重新标记为 Pending，修订号不变
func (s *WorkflowService) Resubmit(actor Actor, courseID string) (course *model.Course, err error) {
	defer func() { recordTransition("resubmit", err) }()

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ? AND trainer_id = ?", courseID, trainer.ID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseRejected {
			return util.ErrCourseNotRejected
		}

		var latest model.Documentation
		if err := tx.Where("course_id = ?", courseID).
			Order("revision_number DESC").
			First(&latest).Error; err != nil {
			return notFoundOr(err, util.ErrDocumentationNotFound)
		}

		if err := tx.Model(&model.Documentation{}).
			Where("id = ?", latest.ID).
			Update("status", model.DocPending).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Course{}).
			Where("id = ? AND status = ?", courseID, model.CourseRejected).
			Update("status", model.CourseInReview)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotRejected
		}

		c.Status = model.CourseInReview
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Review 观察员审阅某一版资料。approve 要求该版为 Pending 且已有文件；
// reject 必须附带非空反馈文本，否则不产生任何变更。被审阅版本的修订号
// 在同一事务内恰好自增一次，课程状态随之联动。
func (s *WorkflowService) Review(actor Actor, docID, action, feedbackText string, rating *int) (doc *model.Documentation, err error) {
	defer func() { recordTransition("review_"+action, err) }()

	feedbackText = strings.TrimSpace(feedbackText)
	if action != ReviewApprove && action != ReviewReject {
		return nil, util.ErrUnknownAction
	}
	if action == ReviewReject && feedbackText == "" {
		return nil, util.ErrFeedbackRequired
	}

	var d model.Documentation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, "id = ?", docID).Error; err != nil {
			return notFoundOr(err, util.ErrDocumentationNotFound)
		}
		if d.Status != model.DocPending {
			return util.ErrDocumentationClosed
		}

		// 只审当前版本；审旧版本会让修订号自增撞上已存在的版本
		var maxRev int
		if err := tx.Model(&model.Documentation{}).
			Where("course_id = ?", d.CourseID).
			Select("COALESCE(MAX(revision_number), 0)").
			Scan(&maxRev).Error; err != nil {
			return err
		}
		if d.RevisionNumber != maxRev {
			return util.ErrDocumentationSuperseded
		}

		var c model.Course
		if err := tx.First(&c, "id = ?", d.CourseID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}

		now := time.Now()
		docUpdates := map[string]interface{}{
			"revision_number": gorm.Expr("revision_number + 1"),
		}
		var courseStatus model.CourseStatus

		switch action {
		case ReviewApprove:
			if d.FilePath == "" {
				return util.ErrPlaceholderDoc
			}
			docUpdates["status"] = model.DocApproved
			docUpdates["approved_at"] = now
			courseStatus = model.CourseApproved
		case ReviewReject:
			docUpdates["status"] = model.DocRejected
			docUpdates["rejected_at"] = now
			courseStatus = model.CourseRejected
		}

		// Pending 作为更新条件，并发审阅只有一方生效，修订号恰好 +1
		res := tx.Model(&model.Documentation{}).
			Where("id = ? AND status = ?", docID, model.DocPending).
			Updates(docUpdates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrDocumentationClosed
		}

		if err := tx.Model(&model.Course{}).
			Where("id = ?", c.ID).
			Update("status", courseStatus).Error; err != nil {
			return err
		}

		if action == ReviewReject {
			feedback := &model.Feedback{
				DocumentationID: d.ID,
				Comments:        feedbackText,
				Rating:          rating,
			}
			if err := tx.Create(feedback).Error; err != nil {
				return err
			}
		}

		return tx.First(&d, "id = ?", docID).Error
	})
	if err != nil {
		// 修订号 +1 撞上并发上传抢先占用的版本号
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrRevisionConflict
		}
		return nil, err
	}

	logger.Log.Info("documentation reviewed",
		zap.String("doc_id", d.ID),
		zap.String("action", action),
		zap.Int("revision", d.RevisionNumber))
	return &d, nil
}

// Complete 课程完成由管理侧在线下确认后标记：Approved → Completed。
// 状态机的守卫表不产生该迁移。
func (s *WorkflowService) Complete(actor Actor, courseID string) (course *model.Course, err error) {
	defer func() { recordTransition("complete", err) }()

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ? AND user_id = ?", courseID, actor.UserID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseApproved {
			return util.ErrCourseNotApproved
		}

		res := tx.Model(&model.Course{}).
			Where("id = ? AND status = ?", courseID, model.CourseApproved).
			Update("status", model.CourseCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotApproved
		}

		c.Status = model.CourseCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RateSession 培训师为已完成的课程追加评分反馈，挂在当前资料版本上
func (s *WorkflowService) RateSession(actor Actor, courseID, comments string, rating *int) (feedback *model.Feedback, err error) {
	defer func() { recordTransition("rate", err) }()

	comments = strings.TrimSpace(comments)
	if comments == "" {
		return nil, util.ErrCommentsRequired
	}

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var fb model.Feedback
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var c model.Course
		if err := tx.First(&c, "id = ? AND trainer_id = ?", courseID, trainer.ID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseCompleted {
			return util.ErrCourseNotCompleted
		}

		var latest model.Documentation
		if err := tx.Where("course_id = ?", courseID).
			Order("revision_number DESC").
			First(&latest).Error; err != nil {
			return notFoundOr(err, util.ErrDocumentationNotFound)
		}

		fb = model.Feedback{
			DocumentationID: latest.ID,
			Comments:        comments,
			Rating:          rating,
		}
		return tx.Create(&fb).Error
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// SubmitCompletionReport 已完成课程的总结报告
func (s *WorkflowService) SubmitCompletionReport(actor Actor, courseID, report string) (course *model.Course, err error) {
	defer func() { recordTransition("report", err) }()

	trainer, err := s.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		return nil, err
	}

	var c model.Course
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, "id = ? AND trainer_id = ?", courseID, trainer.ID).Error; err != nil {
			return notFoundOr(err, util.ErrCourseNotFound)
		}
		if c.Status != model.CourseCompleted {
			return util.ErrCourseNotCompleted
		}

		if err := tx.Model(&model.Course{}).
			Where("id = ?", courseID).
			Update("completion_report", report).Error; err != nil {
			return err
		}

		c.CompletionReport = report
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
