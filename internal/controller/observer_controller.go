package controller

import (
	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/service"
	"skilltrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ObserverController struct {
	Workflow  *service.WorkflowService
	Dashboard *service.DashboardService
}

func NewObserverController(workflow *service.WorkflowService, dashboard *service.DashboardService) *ObserverController {
	return &ObserverController{
		Workflow:  workflow,
		Dashboard: dashboard,
	}
}

// GetDashboard godoc
// @Summary 观察员仪表盘：三个审阅队列
// @Description 待审队列只含已上传文件的资料，空占位不进队列
// @Tags 观察员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ObserverQueues} "Success"
// @Router /api/observer/dashboard [get]
func (c *ObserverController) GetDashboard(ctx *gin.Context) {
	queues, err := c.Dashboard.Queues()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, queues)
}

// PendingReviews godoc
// @Summary 待审阅的资料
// @Tags 观察员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Documentation} "Success"
// @Router /api/observer/reviews/pending [get]
func (c *ObserverController) PendingReviews(ctx *gin.Context) {
	docs, err := c.Dashboard.DocRepo.FindPendingWithFile()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

// CompletedReviews godoc
// @Summary 已批准的资料
// @Tags 观察员
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Documentation} "Success"
// @Router /api/observer/reviews/completed [get]
func (c *ObserverController) CompletedReviews(ctx *gin.Context) {
	docs, err := c.Dashboard.DocRepo.FindByStatus(model.DocApproved)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, docs)
}

type ReviewRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Feedback string `json:"feedback"`
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ReviewDocumentation godoc
// @Summary 审阅资料
// @Description approve 批准该版并批准课程；reject 必须附反馈文本，驳回该版并驳回课程。
// @Description 两种结果都会使被审阅版本的修订号加一，与课程状态变更同事务提交。
// @Tags 观察员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "资料ID"
// @Param   body body ReviewRequest true "审阅动作"
// @Success 200 {object} util.Response{data=model.Documentation} "Success"
// @Failure 400 {object} util.Response "驳回缺少反馈文本"
// @Failure 404 {object} util.Response "资料不存在"
// @Failure 409 {object} util.Response "该版不处于待审状态"
// @Router /api/observer/reviews/{id} [post]
func (c *ObserverController) ReviewDocumentation(ctx *gin.Context) {
	actor := actorFrom(ctx)
	if actor == nil {
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.Workflow.Review(*actor, ctx.Param("id"), req.Action, req.Feedback, req.Rating)
	if err != nil {
		util.WorkflowError(ctx, err)
		return
	}
	util.Success(ctx, doc)
}

// DocumentationFeedback godoc
// @Summary 某版资料的历史反馈，最新的在前
// @Tags 观察员
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "资料ID"
// @Success 200 {object} util.Response{data=[]model.Feedback} "Success"
// @Router /api/observer/reviews/{id}/feedback [get]
func (c *ObserverController) DocumentationFeedback(ctx *gin.Context) {
	feedbacks, err := c.Dashboard.FeedbackRepo.FindByDocumentation(ctx.Param("id"), true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, feedbacks)
}
