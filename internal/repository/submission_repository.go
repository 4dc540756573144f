package repository

import (
	"time"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/util"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.TestSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.TestSubmission, error) {
	var submission model.TestSubmission
	err := r.DB.Preload("Test").First(&submission, id).Error
	return &submission, err
}

// FindByIDWithAnswers 加载提交记录及其作答、题目和已选选项
func (r *SubmissionRepository) FindByIDWithAnswers(id uint) (*model.TestSubmission, error) {
	var submission model.TestSubmission
	err := r.DB.
		Preload("Test").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id asc")
		}).
		Preload("Answers.Question").
		Preload("Answers.Question.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		Preload("Answers.SelectedChoices").
		First(&submission, id).Error
	return &submission, err
}

// Complete 在单个事务内写入作答记录并标记提交完成。
// 事务内重新检查完成标记，重复提交不会产生任何写入。
func (r *SubmissionRepository) Complete(submissionID uint, answers []model.Answer, score float64, endTime time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current model.TestSubmission
		if err := tx.First(&current, submissionID).Error; err != nil {
			return err
		}
		if current.IsCompleted {
			return util.ErrTestAlreadySubmitted
		}
		for i := range answers {
			answers[i].SubmissionID = submissionID
			// Omit 避免级联更新题目本身，仅写入作答及选项关联
			if err := tx.Omit("Question").Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.TestSubmission{}).
			Where("id = ?", submissionID).
			Updates(map[string]interface{}{
				"score":        score,
				"end_time":     endTime,
				"is_completed": true,
			}).Error
	})
}

func (r *SubmissionRepository) FindAnswerByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.
		Preload("Question").
		Preload("SelectedChoices").
		First(&answer, id).Error
	return &answer, err
}
