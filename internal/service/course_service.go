package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/repository"
	"graphicourse_backend/internal/util"
	"graphicourse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCatalogKey = "courses:catalog"
	courseCacheTTL   = 10 * time.Minute
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Redis: rdb}
}

type CourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CourseService) Create(req *CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return course, nil
}

// List 课程目录带Redis缓存，缓存不可用时直接回源数据库
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, courseCatalogKey).Result()
		if err == nil {
			var courses []model.Course
			if jsonErr := json.Unmarshal([]byte(cached), &courses); jsonErr == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, courseCatalogKey, data, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("课程目录写入缓存失败", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(id uint, req *CourseRequest) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog()
	return course, nil
}

func (s *CourseService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *CourseService) invalidateCatalog() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), courseCatalogKey).Err(); err != nil {
		logger.Log.Warn("课程目录缓存失效失败", zap.Error(err))
	}
}
