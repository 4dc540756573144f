package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/repository"
	"graphicourse_backend/internal/util"
	"graphicourse_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, storage *StorageService) *LessonService {
	return &LessonService{LessonRepo: lessonRepo, CourseRepo: courseRepo, Storage: storage}
}

type LessonRequest struct {
	CourseID         uint   `json:"course_id"` // 通过 /courses/:id/lessons 创建时由路径参数填充
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	VideoURL         string `json:"video_url"`
}

func (s *LessonService) Create(req *LessonRequest) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:         req.CourseID,
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		VideoURL:         req.VideoURL,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Get 返回课时详情及导航信息（测试ID、前后课时ID）
func (s *LessonService) Get(id uint) (*model.LessonView, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return s.buildView(lesson)
}

func (s *LessonService) ListByCourse(courseID uint) ([]model.LessonView, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	views := make([]model.LessonView, 0, len(lessons))
	for i := range lessons {
		view, err := s.buildView(&lessons[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *LessonService) Update(id uint, req *LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.ShortDescription = req.ShortDescription
	if req.VideoURL != "" {
		lesson.VideoURL = req.VideoURL
	}
	if req.CourseID != 0 {
		lesson.CourseID = req.CourseID
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(id uint) error {
	if _, err := s.LessonRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	return s.LessonRepo.Delete(id)
}

// UploadVideo 上传课时视频：先落临时文件探测时长，再转存到存储后端
func (s *LessonService) UploadVideo(ctx context.Context, lessonID uint, filename string, reader io.Reader, contentType string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, reader); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	duration := 0
	if info, err := util.GetVideoInfo(tmpPath); err != nil {
		logger.Log.Warn("视频信息探测失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
	} else {
		duration = int(info.Duration)
	}

	objectName := "videos/" + uuid.New().String() + filepath.Ext(filename)
	url, err := s.Storage.UploadFile(ctx, objectName, tmpPath, contentType)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	lesson.VideoDuration = duration
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) buildView(lesson *model.Lesson) (*model.LessonView, error) {
	testID, err := s.LessonRepo.FindTestID(lesson.ID)
	if err != nil {
		return nil, err
	}
	nextID, err := s.LessonRepo.FindNextID(lesson)
	if err != nil {
		return nil, err
	}
	prevID, err := s.LessonRepo.FindPrevID(lesson)
	if err != nil {
		return nil, err
	}

	return &model.LessonView{
		Lesson:       *lesson,
		HasTest:      testID != nil,
		TestID:       testID,
		NextLessonID: nextID,
		PrevLessonID: prevID,
	}, nil
}
