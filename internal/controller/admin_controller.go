package controller

import (
	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/service"
	"skilltrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Workflow  *service.WorkflowService
	Dashboard *service.DashboardService
	Trainers  *service.TrainerService
}

func NewAdminController(workflow *service.WorkflowService, dashboard *service.DashboardService, trainers *service.TrainerService) *AdminController {
	return &AdminController{
		Workflow:  workflow,
		Dashboard: dashboard,
		Trainers:  trainers,
	}
}

// GetDashboard godoc
// @Summary 管理员仪表盘
// @Description 按状态统计课程数量，mine=true 时仅统计本人发起的课程
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Param   mine query bool false "仅本人发起的课程"
// @Success 200 {object} util.Response{data=service.CourseCounts} "Success"
// @Router /api/admin/dashboard [get]
func (c *AdminController) GetDashboard(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	scope := ""
	if ctx.Query("mine") == "true" {
		scope = actor.UserID
	}

	counts, err := c.Dashboard.AdminCounts(scope)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

// ListTrainers godoc
// @Summary 培训师列表
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Param   q query string false "按名称过滤"
// @Success 200 {object} util.Response{data=[]model.Trainer} "Success"
// @Router /api/admin/trainers [get]
func (c *AdminController) ListTrainers(ctx *gin.Context) {
	trainers, err := c.Trainers.List(ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trainers)
}

type AddTrainerRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddTrainer godoc
// @Summary 登记培训师档案
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddTrainerRequest true "培训师信息"
// @Success 201 {object} util.Response{data=model.Trainer} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/trainers [post]
func (c *AdminController) AddTrainer(ctx *gin.Context) {
	var req AddTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trainer, err := c.Trainers.Add(req.Name)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Created(ctx, trainer)
}

type UpdateTrainerRequest struct {
	Name   string `json:"name"`
	Status string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateTrainer godoc
// @Summary 修改培训师档案（名称、启用状态）
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "培训师ID"
// @Param   body body UpdateTrainerRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Trainer} "Success"
// @Failure 404 {object} util.Response "不存在"
// @Router /api/admin/trainers/{id} [put]
func (c *AdminController) UpdateTrainer(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req UpdateTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trainer, err := c.Trainers.Update(*actor, ctx.Param("id"), req.Name, model.TrainerStatus(req.Status))
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, trainer)
}

type RequestCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TrainerID   *string `json:"trainerId"`
}

// RequestCourse godoc
// @Summary 发起课程请求
// @Description 新课程以 Requested 状态创建，可按档案预指派培训师
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RequestCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/courses [post]
func (c *AdminController) RequestCourse(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req RequestCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Workflow.RequestCourse(*actor, req.Title, req.Description, req.TrainerID)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// SchedulableCourses godoc
// @Summary 本人名下处于 In Review、可排期的课程
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/admin/courses/schedulable [get]
func (c *AdminController) SchedulableCourses(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	courses, err := c.Dashboard.CourseRepo.FindByStatusForOwner(model.CourseInReview, actor.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

type ScheduleCourseRequest struct {
	Datetime string `json:"datetime" binding:"required"`
}

// ScheduleCourse godoc
// @Summary 为 In Review 课程指定时间段
// @Description 排期即批准：课程进入 Approved。时间格式 YYYY-MM-DD HH:MM:SS
// @Tags 管理员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Param   body body ScheduleCourseRequest true "时间段"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 400 {object} util.Response "时间格式错误"
// @Failure 409 {object} util.Response "课程不在 In Review"
// @Router /api/admin/courses/{id}/schedule [post]
func (c *AdminController) ScheduleCourse(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req ScheduleCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Workflow.Schedule(*actor, ctx.Param("id"), req.Datetime)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CompleteCourse godoc
// @Summary 标记课程已完成
// @Description Approved → Completed，由管理侧在线下确认后触发
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 409 {object} util.Response "课程不在 Approved"
// @Router /api/admin/courses/{id}/complete [post]
func (c *AdminController) CompleteCourse(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	course, err := c.Workflow.Complete(*actor, ctx.Param("id"))
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// RejectedCourses godoc
// @Summary 被驳回课程及观察员反馈
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.RejectedCourseView} "Success"
// @Router /api/admin/courses/rejected [get]
func (c *AdminController) RejectedCourses(ctx *gin.Context) {
	views, err := c.Dashboard.RejectedCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// ApprovedCourses godoc
// @Summary 已批准课程及其最新已批准资料
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ApprovedCourseView} "Success"
// @Router /api/admin/courses/approved [get]
func (c *AdminController) ApprovedCourses(ctx *gin.Context) {
	views, err := c.Dashboard.ApprovedCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// FeedbackSummary godoc
// @Summary 已完成课程的反馈汇总
// @Description 平均分忽略未评分的反馈，保留两位小数；无评分记 0
// @Tags 管理员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.FeedbackSummary} "Success"
// @Router /api/admin/feedback [get]
func (c *AdminController) FeedbackSummary(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	summaries, err := c.Dashboard.FeedbackSummaries(actor.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}
