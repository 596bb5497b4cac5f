package controller

import (
	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/service"
	"skilltrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrainerController struct {
	Workflow  *service.WorkflowService
	Dashboard *service.DashboardService
	Trainers  *service.TrainerService
}

func NewTrainerController(workflow *service.WorkflowService, dashboard *service.DashboardService, trainers *service.TrainerService) *TrainerController {
	return &TrainerController{
		Workflow:  workflow,
		Dashboard: dashboard,
		Trainers:  trainers,
	}
}

// 培训师接口统一走惰性建档
func (c *TrainerController) currentTrainer(ctx *gin.Context, actor *service.Actor) *model.Trainer {
	trainer, err := c.Trainers.GetOrCreate(actor.UserID, actor.Username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return nil
	}
	return trainer
}

// GetDashboard godoc
// @Summary 培训师仪表盘
// @Description Requested 一栏包含未分配的公开请求
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CourseCounts} "Success"
// @Router /api/trainer/dashboard [get]
func (c *TrainerController) GetDashboard(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}
	trainer := c.currentTrainer(ctx, actor)
	if trainer == nil {
		return
	}

	counts, err := c.Dashboard.TrainerCounts(trainer.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

// MyCourses godoc
// @Summary 指派给本人的课程
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/trainer/courses [get]
func (c *TrainerController) MyCourses(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}
	trainer := c.currentTrainer(ctx, actor)
	if trainer == nil {
		return
	}

	courses, err := c.Dashboard.CourseRepo.FindByTrainer(trainer.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CourseRequests godoc
// @Summary 可见的请求队列
// @Description 待接受或被驳回的课程：未分配、指派给本人，或旧数据按培训师名称匹配到本人
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/trainer/requests [get]
func (c *TrainerController) CourseRequests(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}
	trainer := c.currentTrainer(ctx, actor)
	if trainer == nil {
		return
	}

	courses, err := c.Dashboard.RequestQueue(trainer.ID, trainer.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// AcceptCourse godoc
// @Summary 接受课程请求
// @Description Requested → In Review，创建修订号 1 的占位资料
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "课程已被接受"
// @Router /api/trainer/requests/{id}/accept [post]
func (c *TrainerController) AcceptCourse(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	course, err := c.Workflow.Accept(*actor, ctx.Param("id"))
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeclineCourse godoc
// @Summary 放弃指派给本人的请求
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Router /api/trainer/requests/{id}/decline [post]
func (c *TrainerController) DeclineCourse(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	course, err := c.Workflow.Decline(*actor, ctx.Param("id"))
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// UploadDocumentation godoc
// @Summary 上传课程资料
// @Description 新增一版 Pending 资料，修订号取当前最大值加一。仅接受 pdf/doc/docx/ppt/pptx
// @Tags 培训师
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Param   documentation formData file true "资料文件"
// @Success 201 {object} util.Response{data=model.Documentation} "创建成功"
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/trainer/courses/{id}/documentation [post]
func (c *TrainerController) UploadDocumentation(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	file, err := ctx.FormFile("documentation")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	doc, err := c.Workflow.SubmitDocumentation(ctx.Request.Context(), *actor, ctx.Param("id"), file)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// DocumentationHistory godoc
// @Summary 课程的全部资料版本，按修订号倒序
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Documentation} "Success"
// @Router /api/trainer/courses/{id}/documentation [get]
func (c *TrainerController) DocumentationHistory(ctx *gin.Context) {
	docs, err := c.Dashboard.DocRepo.FindByCourse(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// SubmitForReview godoc
// @Summary 修复后重新送审
// @Description Rejected → In Review，最新一版资料重新进入待审队列
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 409 {object} util.Response "课程未被驳回"
// @Router /api/trainer/courses/{id}/resubmit [post]
func (c *TrainerController) SubmitForReview(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	course, err := c.Workflow.Resubmit(*actor, ctx.Param("id"))
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ApprovalsFeedback godoc
// @Summary 审批进展中的课程（In Review / Approved）
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/trainer/approvals [get]
func (c *TrainerController) ApprovalsFeedback(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}
	trainer := c.currentTrainer(ctx, actor)
	if trainer == nil {
		return
	}

	courses, err := c.Dashboard.CourseRepo.FindByTrainerAndStatuses(trainer.ID,
		[]model.CourseStatus{model.CourseInReview, model.CourseApproved})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CompletedSessions godoc
// @Summary 已完成的授课
// @Tags 培训师
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/trainer/sessions/completed [get]
func (c *TrainerController) CompletedSessions(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}
	trainer := c.currentTrainer(ctx, actor)
	if trainer == nil {
		return
	}

	courses, err := c.Dashboard.CourseRepo.FindByTrainerAndStatuses(trainer.ID,
		[]model.CourseStatus{model.CourseCompleted})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

type RateSessionRequest struct {
	Comments string `json:"comments" binding:"required"`
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// RateSession godoc
// @Summary 为已完成课程追加评分反馈
// @Tags 培训师
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Param   body body RateSessionRequest true "评论与评分"
// @Success 201 {object} util.Response{data=model.Feedback} "创建成功"
// @Router /api/trainer/sessions/{id}/feedback [post]
func (c *TrainerController) RateSession(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req RateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.Workflow.RateSession(*actor, ctx.Param("id"), req.Comments, req.Rating)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Created(ctx, feedback)
}

type SessionReportRequest struct {
	Report string `json:"report" binding:"required"`
}

// SubmitSessionReport godoc
// @Summary 提交授课总结报告
// @Tags 培训师
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "课程ID"
// @Param   body body SessionReportRequest true "报告内容"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Router /api/trainer/sessions/{id}/report [post]
func (c *TrainerController) SubmitSessionReport(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req SessionReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Workflow.SubmitCompletionReport(*actor, ctx.Param("id"), req.Report)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, course)
}
