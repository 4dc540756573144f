package controller

import (
	"context"
	"time"

	"graphicourse_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// Check godoc
// @Summary 健康检查
// @Description 检查数据库和Redis连接状态
// @Tags 系统
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(checkCtx) != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if c.Redis == nil || c.Redis.Ping(checkCtx).Err() != nil {
		redisStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().Format(time.RFC3339),
	})
}
