package controller

import (
	"errors"
	"strconv"

	"graphicourse_backend/internal/service"
	"graphicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	LessonService *service.LessonService
}

func NewCourseController(courseService *service.CourseService, lessonService *service.LessonService) *CourseController {
	return &CourseController{CourseService: courseService, LessonService: lessonService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary 课程列表
// @Description 返回全部课程及其课时
// @Tags 课程
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Description 按ID返回课程及其课时列表
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(&req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(id, &req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Description 删除课程及其全部课时、测试和提交记录
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.Delete(id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CreateLesson godoc
// @Summary 创建课时
// @Description 在指定课程下创建课时
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Param   body body service.LessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.CourseID = id

	lesson, err := c.LessonService.Create(&req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// ListLessons godoc
// @Summary 课程的课时列表
// @Description 返回指定课程下的课时及导航信息
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.LessonView} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/lessons [get]
func (c *CourseController) ListLessons(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lessons, err := c.LessonService.ListByCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lessons)
}
