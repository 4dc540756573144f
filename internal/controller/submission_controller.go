package controller

import (
	"errors"

	"graphicourse_backend/internal/service"
	"graphicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// 当前请求的用户ID，匿名请求返回 nil
func optionalUserID(ctx *gin.Context) *uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil
	}
	id := claims.UserID
	return &id
}

// StartTest godoc
// @Summary 开始测试
// @Description 创建一条未完成的提交记录，游客亦可开始测试
// @Tags 提交
// @Produce  json
// @Param   id path int true "测试ID"
// @Success 201 {object} util.Response{data=model.TestSubmission} "创建成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/tests/{id}/start [post]
func (c *SubmissionController) StartTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.SubmissionService.StartTest(id, optionalUserID(ctx))
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// SubmitTest godoc
// @Summary 提交测试答案
// @Description 校验并评分全部作答，原子化写入作答记录与最终得分
// @Tags 提交
// @Accept  json
// @Produce  json
// @Param   id path int true "提交ID"
// @Param   body body service.SubmitTestRequest true "作答列表"
// @Success 200 {object} util.Response{data=service.SubmitTestResult} "成功"
// @Failure 400 {object} util.Response "作答校验失败或重复提交"
// @Failure 404 {object} util.Response "提交记录或题目不存在"
// @Router /api/test-submissions/{id}/submit [post]
func (c *SubmissionController) SubmitTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SubmissionService.SubmitTest(id, optionalUserID(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubmissionNotFound), errors.Is(err, util.ErrQuestionNotInTest):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestAlreadySubmitted):
			util.BadRequest(ctx, "Test has already been submitted")
		case errors.Is(err, util.ErrChoicesRequired), errors.Is(err, util.ErrTextAnswerRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetResult godoc
// @Summary 查看测试结果
// @Description 返回本人提交的得分及每题判定和反馈，匿名请求一律按不存在处理
// @Tags 提交
// @Produce  json
// @Param   id path int true "提交ID"
// @Success 200 {object} util.Response{data=model.TestSubmission} "成功"
// @Failure 404 {object} util.Response "提交记录不存在"
// @Router /api/test-submissions/{id}/result [get]
func (c *SubmissionController) GetResult(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	submission, err := c.SubmissionService.GetResult(id, optionalUserID(ctx))
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// ReviewAnswer godoc
// @Summary 审阅主观题作答
// @Description 教师或管理员人工判定主观题作答，重新计算提交总分
// @Tags 提交
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "作答ID"
// @Param   body body service.ReviewAnswerRequest true "审阅结果"
// @Success 200 {object} util.Response{data=model.Answer} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "作答不存在或不可审阅"
// @Router /api/answers/{id}/review [put]
func (c *SubmissionController) ReviewAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ReviewAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.SubmissionService.ReviewAnswer(id, util.GetUserFromContext(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAnswerNotFound), errors.Is(err, util.ErrNotOpenEnded):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, answer)
}
