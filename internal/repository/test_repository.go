package repository

import (
	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/util"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create 嵌套创建测试及其题目、选项
func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order asc, questions.id asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		First(&test, id).Error
	return &test, err
}

func (r *TestRepository) FindByLessonID(lessonID uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order asc, questions.id asc")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		Where("lesson_id = ?", lessonID).
		First(&test).Error
	return &test, err
}

// Update 在单个事务内替换测试的全部题目和选项
func (r *TestRepository) Update(test *model.Test, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(test).Error; err != nil {
			return err
		}
		if err := deleteQuestionsCascade(tx, test.ID); err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].TestID = test.ID
			for j := range questions[i].Choices {
				questions[i].Choices[j].ID = 0
			}
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteTestsCascade(tx, []uint{id})
	})
}

// FindQuestionInTest 查找指定测试内的题目，不属于该测试时返回 ErrQuestionNotInTest
func (r *TestRepository) FindQuestionInTest(questionID, testID uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		Where("id = ? AND test_id = ?", questionID, testID).
		First(&question).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuestionNotInTest
		}
		return nil, err
	}
	return &question, nil
}

// FindQuestions 题目列表，testID 不为空时按测试过滤
func (r *TestRepository) FindQuestions(testID *uint) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choices.id asc")
	})
	if testID != nil {
		query = query.Where("test_id = ?", *testID)
	}
	err := query.Order("test_id asc, display_order asc, id asc").Find(&questions).Error
	return questions, err
}

func (r *TestRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *TestRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		First(&question, id).Error
	return &question, err
}

// UpdateQuestion 替换题目本身及其全部选项
func (r *TestRepository) UpdateQuestion(question *model.Question, choices []model.Choice) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Choices").Save(question).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		for i := range choices {
			choices[i].ID = 0
			choices[i].QuestionID = question.ID
			if err := tx.Create(&choices[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM answer_choices WHERE choice_id IN (SELECT id FROM choices WHERE question_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

// deleteQuestionsCascade 删除测试下的全部题目、选项及关联的作答记录
func deleteQuestionsCascade(tx *gorm.DB, testID uint) error {
	var questionIDs []uint
	if err := tx.Model(&model.Question{}).Where("test_id = ?", testID).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) == 0 {
		return nil
	}
	if err := tx.Exec(
		"DELETE FROM answer_choices WHERE choice_id IN (SELECT id FROM choices WHERE question_id IN ?)", questionIDs,
	).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Choice{}).Error; err != nil {
		return err
	}
	return tx.Where("test_id = ?", testID).Delete(&model.Question{}).Error
}

// deleteTestsCascade 删除测试及其题目、选项、提交记录和作答记录
func deleteTestsCascade(tx *gorm.DB, testIDs []uint) error {
	for _, testID := range testIDs {
		if err := deleteQuestionsCascade(tx, testID); err != nil {
			return err
		}
	}
	var submissionIDs []uint
	if err := tx.Model(&model.TestSubmission{}).Where("test_id IN ?", testIDs).Pluck("id", &submissionIDs).Error; err != nil {
		return err
	}
	if len(submissionIDs) > 0 {
		if err := tx.Exec(
			"DELETE FROM answer_choices WHERE answer_id IN (SELECT id FROM answers WHERE submission_id IN ?)", submissionIDs,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id IN ?", submissionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id IN ?", testIDs).Delete(&model.TestSubmission{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("id IN ?", testIDs).Delete(&model.Test{}).Error
}
