package service

import (
	"errors"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/repository"
	"graphicourse_backend/internal/util"

	"gorm.io/gorm"
)

type TestService struct {
	TestRepo   *repository.TestRepository
	LessonRepo *repository.LessonRepository
}

func NewTestService(testRepo *repository.TestRepository, lessonRepo *repository.LessonRepository) *TestService {
	return &TestService{TestRepo: testRepo, LessonRepo: lessonRepo}
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Text          string          `json:"text" binding:"required"`
	QuestionType  string          `json:"question_type" binding:"required,oneof=MCQ OPEN"`
	Points        int             `json:"points"`
	Order         int             `json:"order"`
	CorrectAnswer string          `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	Choices       []ChoiceRequest `json:"choices"`
}

type TestRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	PassingScore int               `json:"passing_score"`
	TimeLimit    int               `json:"time_limit"`
	Questions    []QuestionRequest `json:"questions"`
}

func buildQuestion(req *QuestionRequest) model.Question {
	points := req.Points
	if points <= 0 {
		points = 1
	}
	question := model.Question{
		Text:          req.Text,
		QuestionType:  model.QuestionType(req.QuestionType),
		Points:        points,
		Order:         req.Order,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	for _, c := range req.Choices {
		question.Choices = append(question.Choices, model.Choice{
			Text:      c.Text,
			IsCorrect: c.IsCorrect,
		})
	}
	return question
}

// CreateForLesson 为课时创建测试，一个课时最多一个测试
func (s *TestService) CreateForLesson(lessonID uint, req *TestRequest) (*model.Test, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	existing, err := s.LessonRepo.FindTestID(lessonID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrLessonHasTest
	}

	test := &model.Test{
		LessonID:     lessonID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
	}
	if test.PassingScore <= 0 {
		test.PassingScore = 70
	}
	if test.TimeLimit <= 0 {
		test.TimeLimit = 30
	}
	for i := range req.Questions {
		test.Questions = append(test.Questions, buildQuestion(&req.Questions[i]))
	}

	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return s.Get(test.ID)
}

func (s *TestService) Get(id uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) GetByLesson(lessonID uint) (*model.Test, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	test, err := s.TestRepo.FindByLessonID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

// Update 更新测试元信息并整体替换题目，已有作答记录一并清除
func (s *TestService) Update(id uint, req *TestRequest) (*model.Test, error) {
	test, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	test.Title = req.Title
	test.Description = req.Description
	if req.PassingScore > 0 {
		test.PassingScore = req.PassingScore
	}
	if req.TimeLimit > 0 {
		test.TimeLimit = req.TimeLimit
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, buildQuestion(&req.Questions[i]))
	}

	if err := s.TestRepo.Update(test, questions); err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *TestService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.TestRepo.Delete(id)
}

func (s *TestService) ListQuestions(testID *uint) ([]model.Question, error) {
	return s.TestRepo.FindQuestions(testID)
}

func (s *TestService) GetQuestion(questionID uint) (*model.Question, error) {
	question, err := s.TestRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotInTest
		}
		return nil, err
	}
	return question, nil
}

func (s *TestService) AddQuestion(testID uint, req *QuestionRequest) (*model.Question, error) {
	if _, err := s.Get(testID); err != nil {
		return nil, err
	}

	question := buildQuestion(req)
	question.TestID = testID
	if err := s.TestRepo.CreateQuestion(&question); err != nil {
		return nil, err
	}
	return s.TestRepo.FindQuestionByID(question.ID)
}

func (s *TestService) UpdateQuestion(questionID uint, req *QuestionRequest) (*model.Question, error) {
	question, err := s.TestRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotInTest
		}
		return nil, err
	}

	updated := buildQuestion(req)
	updated.ID = question.ID
	updated.TestID = question.TestID
	updated.CreatedAt = question.CreatedAt
	choices := updated.Choices
	updated.Choices = nil

	if err := s.TestRepo.UpdateQuestion(&updated, choices); err != nil {
		return nil, err
	}
	return s.TestRepo.FindQuestionByID(questionID)
}

func (s *TestService) DeleteQuestion(questionID uint) error {
	if _, err := s.TestRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotInTest
		}
		return err
	}
	return s.TestRepo.DeleteQuestion(questionID)
}
