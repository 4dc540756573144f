package controller

import (
	"errors"

	"graphicourse_backend/internal/service"
	"graphicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	TestService   *service.TestService
}

func NewLessonController(lessonService *service.LessonService, testService *service.TestService) *LessonController {
	return &LessonController{LessonService: lessonService, TestService: testService}
}

// Get godoc
// @Summary 课时详情
// @Description 返回课时内容及前后课时、测试的导航信息
// @Tags 课时
// @Produce  json
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.LessonView} "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.LessonService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// Update godoc
// @Summary 更新课时
// @Tags 课时
// @Accept  json
// @Produce  json
// @Param   id path int true "课时ID"
// @Param   body body service.LessonRequest true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Update(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary 删除课时
// @Description 删除课时及其关联的测试和提交记录
// @Tags 课时
// @Produce  json
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.LessonService.Delete(id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadVideo godoc
// @Summary 上传课时视频
// @Description 上传视频文件，自动探测时长并更新课时
// @Tags 课时
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课时ID"
// @Param   video formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "请选择要上传的视频文件")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !util.IsVideo(contentType) {
		util.BadRequest(ctx, "仅支持视频格式")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	lesson, err := c.LessonService.UploadVideo(ctx.Request.Context(), id, fileHeader.Filename, file, contentType)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// GetTest godoc
// @Summary 课时的测试
// @Description 返回课时关联的测试及全部题目和选项
// @Tags 课时
// @Produce  json
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response{data=model.Test} "成功"
// @Failure 404 {object} util.Response "课时或测试不存在"
// @Router /api/lessons/{id}/test [get]
func (c *LessonController) GetTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	test, err := c.TestService.GetByLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) || errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, test)
}

// CreateTest godoc
// @Summary 为课时创建测试
// @Description 一个课时最多关联一个测试，可嵌套创建题目和选项
// @Tags 课时
// @Accept  json
// @Produce  json
// @Param   id path int true "课时ID"
// @Param   body body service.TestRequest true "测试信息"
// @Success 201 {object} util.Response{data=model.Test} "创建成功"
// @Failure 400 {object} util.Response "课时已有测试"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/lessons/{id}/test [post]
func (c *LessonController) CreateTest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.CreateForLesson(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrLessonHasTest):
			util.BadRequest(ctx, "该课时已有测试")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, test)
}
