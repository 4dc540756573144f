package repository

import (
	"graphicourse_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("id asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// Delete 级联删除课时关联的测试
func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var testIDs []uint
		if err := tx.Model(&model.Test{}).Where("lesson_id = ?", id).Pluck("id", &testIDs).Error; err != nil {
			return err
		}
		if len(testIDs) > 0 {
			if err := deleteTestsCascade(tx, testIDs); err != nil {
				return err
			}
		}
		return tx.Delete(&model.Lesson{}, id).Error
	})
}

// FindTestID 返回课时关联的测试ID，没有测试时返回 nil
func (r *LessonRepository) FindTestID(lessonID uint) (*uint, error) {
	var test model.Test
	err := r.DB.Select("id").Where("lesson_id = ?", lessonID).First(&test).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &test.ID, nil
}

// FindNextID 同一课程内ID更大的下一课时
func (r *LessonRepository) FindNextID(lesson *model.Lesson) (*uint, error) {
	var next model.Lesson
	err := r.DB.Select("id").
		Where("course_id = ? AND id > ?", lesson.CourseID, lesson.ID).
		Order("id asc").First(&next).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &next.ID, nil
}

// FindPrevID 同一课程内ID更小的上一课时
func (r *LessonRepository) FindPrevID(lesson *model.Lesson) (*uint, error) {
	var prev model.Lesson
	err := r.DB.Select("id").
		Where("course_id = ? AND id < ?", lesson.CourseID, lesson.ID).
		Order("id desc").First(&prev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &prev.ID, nil
}
