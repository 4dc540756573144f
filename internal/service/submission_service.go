package service

import (
	"errors"
	"strings"
	"time"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/repository"
	"graphicourse_backend/internal/util"
	"graphicourse_backend/pkg/logger"
	"graphicourse_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	TestRepo       *repository.TestRepository
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository, testRepo *repository.TestRepository) *SubmissionService {
	return &SubmissionService{SubmissionRepo: submissionRepo, TestRepo: testRepo}
}

type SubmitAnswerRequest struct {
	QuestionID        uint   `json:"question_id" binding:"required"`
	SelectedChoiceIDs []uint `json:"selected_choice_ids"`
	TextAnswer        string `json:"text_answer"`
}

type SubmitTestRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"required"`
}

type SubmitTestResult struct {
	SubmissionID uint    `json:"submission_id"`
	Score        float64 `json:"score"`
	PassingScore int     `json:"passing_score"`
	Passed       bool    `json:"passed"`
	IsCompleted  bool    `json:"is_completed"`
}

type ReviewAnswerRequest struct {
	IsCorrect *bool  `json:"is_correct" binding:"required"`
	Feedback  string `json:"feedback"`
}

// StartTest 创建一条未完成的提交记录，游客提交时 userID 为空
func (s *SubmissionService) StartTest(testID uint, userID *uint) (*model.TestSubmission, error) {
	if _, err := s.TestRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	submission := &model.TestSubmission{
		TestID:    testID,
		UserID:    userID,
		StartTime: time.Now(),
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// SubmitTest 校验并评分全部作答，在单个事务内写入作答记录并定稿得分。
// 任何一条作答校验失败都不会产生写入。
func (s *SubmissionService) SubmitTest(submissionID uint, userID *uint, req *SubmitTestRequest) (*SubmitTestResult, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if !canAccessSubmission(submission, userID) {
		return nil, util.ErrSubmissionNotFound
	}
	if submission.IsCompleted {
		return nil, util.ErrTestAlreadySubmitted
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for i := range req.Answers {
		answer, err := s.gradeAnswer(submission.TestID, &req.Answers[i])
		if err != nil {
			return nil, err
		}
		answers = append(answers, *answer)
	}

	score, _ := ComputeScore(answers)
	endTime := time.Now()

	if err := s.SubmissionRepo.Complete(submission.ID, answers, score, endTime); err != nil {
		return nil, err
	}

	passed := submission.Test != nil && score >= float64(submission.Test.PassingScore)
	monitoring.ObserveGradedSubmission(passed)
	logger.Log.Info("测试提交已评分",
		zap.Uint("submission_id", submission.ID),
		zap.Float64("score", score),
		zap.Bool("passed", passed))

	result := &SubmitTestResult{
		SubmissionID: submission.ID,
		Score:        score,
		Passed:       passed,
		IsCompleted:  true,
	}
	if submission.Test != nil {
		result.PassingScore = submission.Test.PassingScore
	}
	return result, nil
}

// GetResult 返回本人提交的详细结果，含每题判定和反馈
func (s *SubmissionService) GetResult(submissionID uint, userID *uint) (*model.TestSubmission, error) {
	// 匿名请求无法证明归属，一律视为不存在
	if userID == nil {
		return nil, util.ErrSubmissionNotFound
	}

	submission, err := s.SubmissionRepo.FindByIDWithAnswers(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.UserID == nil || *submission.UserID != *userID {
		return nil, util.ErrSubmissionNotFound
	}
	return submission, nil
}

// ReviewAnswer 人工审阅主观题作答，并在同一事务内重新计算提交总分
func (s *SubmissionService) ReviewAnswer(answerID uint, reviewer *util.Claims, req *ReviewAnswerRequest) (*model.Answer, error) {
	if reviewer == nil || !reviewer.Role.IsStaff() {
		return nil, util.ErrPermissionDenied
	}

	answer, err := s.SubmissionRepo.FindAnswerByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}
	if answer.Question == nil || answer.Question.QuestionType != model.OpenEnded {
		return nil, util.ErrNotOpenEnded
	}

	correctness := model.CorrectnessIncorrect
	if *req.IsCorrect {
		correctness = model.CorrectnessCorrect
	}

	err = s.SubmissionRepo.DB.Transaction(func(tx *gorm.DB) error {
		// 反馈整体覆盖，传空串即清除自动评分生成的反馈
		updates := map[string]interface{}{
			"correctness": correctness,
			"feedback":    req.Feedback,
		}
		if err := tx.Model(&model.Answer{}).Where("id = ?", answer.ID).Updates(updates).Error; err != nil {
			return err
		}

		var all []model.Answer
		if err := tx.Preload("Question").
			Where("submission_id = ?", answer.SubmissionID).
			Find(&all).Error; err != nil {
			return err
		}

		score, totalPoints := ComputeScore(all)
		// 没有任何计分题时保持原得分不变
		if totalPoints > 0 {
			if err := tx.Model(&model.TestSubmission{}).
				Where("id = ?", answer.SubmissionID).
				Update("score", score).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("主观题作答已审阅",
		zap.Uint("answer_id", answer.ID),
		zap.Uint("reviewer_id", reviewer.UserID),
		zap.String("correctness", string(correctness)))

	return s.SubmissionRepo.FindAnswerByID(answerID)
}

// gradeAnswer 校验单条作答并评分，不落库
func (s *SubmissionService) gradeAnswer(testID uint, req *SubmitAnswerRequest) (*model.Answer, error) {
	question, err := s.TestRepo.FindQuestionInTest(req.QuestionID, testID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: question.ID,
		Question:   question,
		TextAnswer: req.TextAnswer,
	}

	switch question.QuestionType {
	case model.MultipleChoice:
		if len(req.SelectedChoiceIDs) == 0 {
			return nil, util.ErrChoicesRequired
		}
		// 仅解析属于该题的选项，无关选项ID直接忽略
		selected := resolveChoices(question.Choices, req.SelectedChoiceIDs)
		answer.SelectedChoices = selected
		answer.Correctness = EvaluateMultipleChoice(question, selected)
	case model.OpenEnded:
		if strings.TrimSpace(req.TextAnswer) == "" {
			return nil, util.ErrTextAnswerRequired
		}
		answer.Correctness, answer.Feedback = EvaluateOpenEnded(question.CorrectAnswer, req.TextAnswer)
	}

	return answer, nil
}

func resolveChoices(choices []model.Choice, ids []uint) []model.Choice {
	byID := make(map[uint]model.Choice, len(choices))
	for _, c := range choices {
		byID[c.ID] = c
	}

	var selected []model.Choice
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if c, ok := byID[id]; ok {
			selected = append(selected, c)
		}
	}
	return selected
}

func canAccessSubmission(submission *model.TestSubmission, userID *uint) bool {
	if submission.UserID == nil {
		// 匿名提交任何持有ID的客户端都可以继续作答
		return true
	}
	return userID != nil && *submission.UserID == *userID
}
