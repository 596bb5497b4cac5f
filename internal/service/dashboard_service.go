package service

import (
	"errors"
	"math"

	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/repository"

	"gorm.io/gorm"
)

// DashboardService 角色视角的只读投影，每次调用直接从库里重算，不做缓存
type DashboardService struct {
	CourseRepo   *repository.CourseRepository
	DocRepo      *repository.DocumentationRepository
	FeedbackRepo *repository.FeedbackRepository
}

func NewDashboardService(courseRepo *repository.CourseRepository, docRepo *repository.DocumentationRepository, feedbackRepo *repository.FeedbackRepository) *DashboardService {
	return &DashboardService{
		CourseRepo:   courseRepo,
		DocRepo:      docRepo,
		FeedbackRepo: feedbackRepo,
	}
}

// swagger:model CourseCounts
type CourseCounts struct {
	Requested int64 `json:"requested"`
	InReview  int64 `json:"inReview"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
}

var allStatuses = []model.CourseStatus{
	model.CourseRequested,
	model.CourseInReview,
	model.CourseApproved,
	model.CourseRejected,
	model.CourseCompleted,
}

func (c *CourseCounts) set(status model.CourseStatus, n int64) {
	switch status {
	case model.CourseRequested:
		c.Requested = n
	case model.CourseInReview:
		c.InReview = n
	case model.CourseApproved:
		c.Approved = n
	case model.CourseRejected:
		c.Rejected = n
	case model.CourseCompleted:
		c.Completed = n
	}
}

// AdminCounts 按状态统计课程数；userID 非空时仅统计该管理员发起的课程
func (s *DashboardService) AdminCounts(userID string) (*CourseCounts, error) {
	counts := &CourseCounts{}
	for _, status := range allStatuses {
		var n int64
		var err error
		if userID == "" {
			n, err = s.CourseRepo.CountByStatus(status)
		} else {
			n, err = s.CourseRepo.CountByStatusForOwner(status, userID)
		}
		if err != nil {
			return nil, err
		}
		counts.set(status, n)
	}
	return counts, nil
}

// TrainerCounts 培训师视角：Requested 一栏包含未分配的请求
func (s *DashboardService) TrainerCounts(trainerID string) (*CourseCounts, error) {
	counts := &CourseCounts{}

	open, err := s.CourseRepo.CountOpenRequestsForTrainer(trainerID)
	if err != nil {
		return nil, err
	}
	counts.Requested = open

	for _, status := range allStatuses[1:] {
		n, err := s.CourseRepo.CountByStatusForTrainer(status, trainerID)
		if err != nil {
			return nil, err
		}
		counts.set(status, n)
	}
	return counts, nil
}

func (s *DashboardService) RequestQueue(trainerID, trainerName string) ([]model.Course, error) {
	return s.CourseRepo.FindRequestQueue(trainerID, trainerName)
}

// swagger:model FeedbackSummary
type FeedbackSummary struct {
	CourseID      string  `json:"courseId"`
	Course        string  `json:"course"`
	AverageRating float64 `json:"averageRating"`
	CommentsCount int     `json:"commentsCount"`
}

// FeedbackSummaries 每门已完成课程的评分均值（忽略空评分，保留两位小数，
// 无评分记 0）与评论总数
func (s *DashboardService) FeedbackSummaries(adminUserID string) ([]FeedbackSummary, error) {
	courses, err := s.CourseRepo.FindByStatusForOwner(model.CourseCompleted, adminUserID)
	if err != nil {
		return nil, err
	}

	summaries := make([]FeedbackSummary, 0, len(courses))
	for _, course := range courses {
		feedbacks, err := s.FeedbackRepo.FindByCourse(course.ID)
		if err != nil {
			return nil, err
		}

		totalRating, rated := 0, 0
		for _, fb := range feedbacks {
			if fb.Rating != nil {
				totalRating += *fb.Rating
				rated++
			}
		}

		avg := 0.0
		if rated > 0 {
			avg = math.Round(float64(totalRating)/float64(rated)*100) / 100
		}

		summaries = append(summaries, FeedbackSummary{
			CourseID:      course.ID,
			Course:        course.Title,
			AverageRating: avg,
			CommentsCount: len(feedbacks),
		})
	}
	return summaries, nil
}

// swagger:model ObserverQueues
type ObserverQueues struct {
	Pending  []model.Documentation `json:"pending"`
	Approved []model.Documentation `json:"approved"`
	Rejected []model.Documentation `json:"rejected"`
}

// Queues 观察员的三个审阅队列；待审队列排除空占位记录
func (s *DashboardService) Queues() (*ObserverQueues, error) {
	pending, err := s.DocRepo.FindPendingWithFile()
	if err != nil {
		return nil, err
	}
	approved, err := s.DocRepo.FindByStatus(model.DocApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.DocRepo.FindByStatus(model.DocRejected)
	if err != nil {
		return nil, err
	}
	return &ObserverQueues{Pending: pending, Approved: approved, Rejected: rejected}, nil
}

// swagger:model RejectedCourseView
type RejectedCourseView struct {
	Course    model.Course     `json:"course"`
	Feedbacks []model.Feedback `json:"feedbacks"`
}

// RejectedCourses 被驳回课程及其最新一版资料上的反馈
func (s *DashboardService) RejectedCourses() ([]RejectedCourseView, error) {
	courses, err := s.CourseRepo.FindByStatus(model.CourseRejected)
	if err != nil {
		return nil, err
	}

	views := make([]RejectedCourseView, 0, len(courses))
	for _, course := range courses {
		view := RejectedCourseView{Course: course}

		latest, err := s.DocRepo.FindCurrentByCourse(course.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			views = append(views, view)
			continue
		}

		feedbacks, err := s.FeedbackRepo.FindByDocumentation(latest.ID, false)
		if err != nil {
			return nil, err
		}
		view.Feedbacks = feedbacks
		views = append(views, view)
	}
	return views, nil
}

// swagger:model ApprovedCourseView
type ApprovedCourseView struct {
	Course model.Course         `json:"course"`
	Latest *model.Documentation `json:"latestApprovedDoc"`
}

// ApprovedCourses 已批准课程及其最新一版已批准资料
func (s *DashboardService) ApprovedCourses() ([]ApprovedCourseView, error) {
	courses, err := s.CourseRepo.FindByStatus(model.CourseApproved)
	if err != nil {
		return nil, err
	}

	views := make([]ApprovedCourseView, 0, len(courses))
	for _, course := range courses {
		view := ApprovedCourseView{Course: course}
		latest, err := s.DocRepo.FindLatestByCourseAndStatus(course.ID, model.DocApproved)
		if err == nil {
			view.Latest = latest
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
