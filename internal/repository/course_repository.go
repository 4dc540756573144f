package repository

import (
	"graphicourse_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lessons.id asc")
	}).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lessons.id asc")
	}).Order("id asc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Omit("Lessons").Save(course).Error
}

// Delete 级联删除课程下的课时、测试、题目、选项及提交记录
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			var testIDs []uint
			if err := tx.Model(&model.Test{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &testIDs).Error; err != nil {
				return err
			}
			if len(testIDs) > 0 {
				if err := deleteTestsCascade(tx, testIDs); err != nil {
					return err
				}
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}
