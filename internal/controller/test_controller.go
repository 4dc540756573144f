package controller

import (
	"errors"
	"strconv"

	"graphicourse_backend/internal/service"
	"graphicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// Get godoc
// @Summary 测试详情
// @Description 返回测试及按顺序排列的题目和选项
// @Tags 测试
// @Produce  json
// @Param   id path int true "测试ID"
// @Success 200 {object} util.Response{data=model.Test} "成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	test, err := c.TestService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}

// Update godoc
// @Summary 更新测试
// @Description 更新测试元信息并整体替换题目
// @Tags 测试
// @Accept  json
// @Produce  json
// @Param   id path int true "测试ID"
// @Param   body body service.TestRequest true "测试信息"
// @Success 200 {object} util.Response{data=model.Test} "成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/tests/{id} [put]
func (c *TestController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.Update(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}

// Delete godoc
// @Summary 删除测试
// @Description 删除测试及其题目、选项和提交记录
// @Tags 测试
// @Produce  json
// @Param   id path int true "测试ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/tests/{id} [delete]
func (c *TestController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.TestService.Delete(id); err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type createQuestionRequest struct {
	TestID uint `json:"test_id" binding:"required"`
	service.QuestionRequest
}

// ListQuestions godoc
// @Summary 题目列表
// @Description 返回全部题目，可按测试ID过滤
// @Tags 题目
// @Produce  json
// @Param   test_id query int false "测试ID"
// @Success 200 {object} util.Response{data=[]model.Question} "成功"
// @Router /api/questions [get]
func (c *TestController) ListQuestions(ctx *gin.Context) {
	var testID *uint
	if raw := ctx.Query("test_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "无效的test_id参数")
			return
		}
		id := uint(parsed)
		testID = &id
	}

	questions, err := c.TestService.ListQuestions(testID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// CreateQuestion godoc
// @Summary 添加题目
// @Tags 题目
// @Accept  json
// @Produce  json
// @Param   body body controller.createQuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Failure 404 {object} util.Response "测试不存在"
// @Router /api/questions [post]
func (c *TestController) CreateQuestion(ctx *gin.Context) {
	var req createQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.TestService.AddQuestion(req.TestID, &req.QuestionRequest)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// GetQuestion godoc
// @Summary 题目详情
// @Tags 题目
// @Produce  json
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [get]
func (c *TestController) GetQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.TestService.GetQuestion(id)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotInTest) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Description 更新题目内容并整体替换选项
// @Tags 题目
// @Accept  json
// @Produce  json
// @Param   id path int true "题目ID"
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [put]
func (c *TestController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.TestService.UpdateQuestion(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotInTest) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 题目
// @Produce  json
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [delete]
func (c *TestController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.TestService.DeleteQuestion(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotInTest) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
