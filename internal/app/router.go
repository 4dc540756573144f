package app

import (
	"graphicourse_backend/docs"
	"graphicourse_backend/internal/config"
	"graphicourse_backend/internal/middleware"
	"graphicourse_backend/internal/model"
	"graphicourse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.Check)

		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// 课程内容的增删改查完全公开
		api.GET("/courses", c.course.List)
		api.POST("/courses", c.course.Create)
		api.GET("/courses/:id", c.course.Get)
		api.PUT("/courses/:id", c.course.Update)
		api.DELETE("/courses/:id", c.course.Delete)
		api.GET("/courses/:id/lessons", c.course.ListLessons)
		api.POST("/courses/:id/lessons", c.course.CreateLesson)

		api.GET("/lessons/:id", c.lesson.Get)
		api.PUT("/lessons/:id", c.lesson.Update)
		api.DELETE("/lessons/:id", c.lesson.Delete)
		api.GET("/lessons/:id/test", c.lesson.GetTest)
		api.POST("/lessons/:id/test", c.lesson.CreateTest)

		api.GET("/tests/:id", c.test.Get)
		api.PUT("/tests/:id", c.test.Update)
		api.DELETE("/tests/:id", c.test.Delete)

		api.GET("/questions", c.test.ListQuestions)
		api.POST("/questions", c.test.CreateQuestion)
		api.GET("/questions/:id", c.test.GetQuestion)
		api.PUT("/questions/:id", c.test.UpdateQuestion)
		api.DELETE("/questions/:id", c.test.DeleteQuestion)

		// 游客可以开始测试并提交答案；结果归属校验在服务层，匿名请求得到404
		optional := api.Group("", middleware.TryAuthMiddleware(cfg))
		{
			optional.POST("/tests/:id/start", c.submission.StartTest)
			optional.POST("/test-submissions/:id/submit", c.submission.SubmitTest)
			optional.GET("/test-submissions/:id/result", c.submission.GetResult)
		}

		// 登录用户
		authed := api.Group("", middleware.AuthMiddleware(cfg))
		{
			authed.GET("/profile", c.user.GetProfile)
			authed.PUT("/profile", c.user.UpdateProfile)
			authed.POST("/profile/avatar", c.user.UploadAvatar)
			authed.POST("/lessons/:id/video", c.lesson.UploadVideo)
		}

		// 主观题审阅仅限教师和管理员
		staff := api.Group("", middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
		{
			staff.PUT("/answers/:id/review", c.submission.ReviewAnswer)
		}
	}
}
