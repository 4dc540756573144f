package service

import (
	"testing"

	"graphicourse_backend/internal/model"
	"graphicourse_backend/internal/repository"
	"graphicourse_backend/internal/util"
	"graphicourse_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSubmissionTestDB 建内存数据库，表结构与MySQL迁移结果等价
func newSubmissionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE tests (
			id integer primary key autoincrement,
			created_at datetime, updated_at datetime, deleted_at datetime,
			lesson_id integer not null,
			title text not null,
			description text,
			passing_score integer default 70,
			time_limit integer default 30)`,
		`CREATE TABLE questions (
			id integer primary key autoincrement,
			created_at datetime, updated_at datetime, deleted_at datetime,
			test_id integer not null,
			text text not null,
			question_type text default 'MCQ',
			points integer default 1,
			display_order integer default 0,
			correct_answer text,
			explanation text)`,
		`CREATE TABLE choices (
			id integer primary key autoincrement,
			created_at datetime, updated_at datetime, deleted_at datetime,
			question_id integer not null,
			text text not null,
			is_correct boolean default false)`,
		`CREATE TABLE test_submissions (
			id integer primary key autoincrement,
			created_at datetime, updated_at datetime, deleted_at datetime,
			test_id integer not null,
			user_id integer,
			score real,
			start_time datetime,
			end_time datetime,
			is_completed boolean default false)`,
		`CREATE TABLE answers (
			id integer primary key autoincrement,
			created_at datetime, updated_at datetime, deleted_at datetime,
			submission_id integer not null,
			question_id integer not null,
			text_answer text,
			correctness text default 'pending',
			feedback text)`,
		`CREATE TABLE answer_choices (
			answer_id integer not null,
			choice_id integer not null,
			primary key (answer_id, choice_id))`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newSubmissionService(t *testing.T) (*SubmissionService, *gorm.DB) {
	db := newSubmissionTestDB(t)
	svc := NewSubmissionService(repository.NewSubmissionRepository(db), repository.NewTestRepository(db))
	return svc, db
}

func TestSubmitTestRejectsResubmission(t *testing.T) {
	svc, db := newSubmissionService(t)

	test := &model.Test{
		LessonID:     1,
		Title:        "图形学基础测验",
		PassingScore: 70,
		TimeLimit:    30,
		Questions: []model.Question{
			{
				Text:         "栅格图像由什么组成？",
				QuestionType: model.MultipleChoice,
				Points:       1,
				Choices: []model.Choice{
					{Text: "像素", IsCorrect: true},
					{Text: "数学公式"},
				},
			},
		},
	}
	require.NoError(t, db.Create(test).Error)

	submission, err := svc.StartTest(test.ID, nil)
	require.NoError(t, err)

	req := &SubmitTestRequest{Answers: []SubmitAnswerRequest{{
		QuestionID:        test.Questions[0].ID,
		SelectedChoiceIDs: []uint{test.Questions[0].Choices[0].ID},
	}}}

	result, err := svc.SubmitTest(submission.ID, nil, req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)
	assert.True(t, result.IsCompleted)

	// 重复提交返回状态冲突
	_, err = svc.SubmitTest(submission.ID, nil, req)
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	// 事务内的完成标记复查同样拒绝写入
	err = svc.SubmissionRepo.Complete(submission.ID, []model.Answer{{QuestionID: test.Questions[0].ID}}, 0, submission.StartTime)
	assert.ErrorIs(t, err, util.ErrTestAlreadySubmitted)

	// 作答记录和得分保持首次提交的结果
	var count int64
	require.NoError(t, db.Model(&model.Answer{}).Where("submission_id = ?", submission.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var current model.TestSubmission
	require.NoError(t, db.First(&current, submission.ID).Error)
	require.NotNil(t, current.Score)
	assert.Equal(t, 100.0, *current.Score)
}

func TestReviewAnswerOverwritesFeedback(t *testing.T) {
	svc, db := newSubmissionService(t)

	test := &model.Test{
		LessonID:     2,
		Title:        "矢量图形测验",
		PassingScore: 70,
		TimeLimit:    30,
		Questions: []model.Question{
			{
				Text:          "描述矢量图形的优点。",
				QuestionType:  model.OpenEnded,
				Points:        2,
				CorrectAnswer: "scalable vector graphics",
			},
		},
	}
	require.NoError(t, db.Create(test).Error)

	submission, err := svc.StartTest(test.ID, nil)
	require.NoError(t, err)

	req := &SubmitTestRequest{Answers: []SubmitAnswerRequest{{
		QuestionID: test.Questions[0].ID,
		TextAnswer: "完全不记得了",
	}}}
	result, err := svc.SubmitTest(submission.ID, nil, req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)

	var answer model.Answer
	require.NoError(t, db.Where("submission_id = ?", submission.ID).First(&answer).Error)
	require.Equal(t, model.CorrectnessIncorrect, answer.Correctness)
	require.NotEmpty(t, answer.Feedback)

	// 审阅判对且传空反馈：清除自动评分的反馈，重算总分
	reviewer := &util.Claims{UserID: 9, Role: model.Teacher}
	isCorrect := true
	reviewed, err := svc.ReviewAnswer(answer.ID, reviewer, &ReviewAnswerRequest{IsCorrect: &isCorrect, Feedback: ""})
	require.NoError(t, err)
	assert.Equal(t, model.CorrectnessCorrect, reviewed.Correctness)
	assert.Empty(t, reviewed.Feedback)

	var current model.TestSubmission
	require.NoError(t, db.First(&current, submission.ID).Error)
	require.NotNil(t, current.Score)
	assert.Equal(t, 100.0, *current.Score)

	// 再次审阅写入新反馈
	reviewed, err = svc.ReviewAnswer(answer.ID, reviewer, &ReviewAnswerRequest{IsCorrect: &isCorrect, Feedback: "答得很好"})
	require.NoError(t, err)
	assert.Equal(t, "答得很好", reviewed.Feedback)
}

func TestReviewAnswerRequiresStaff(t *testing.T) {
	svc := NewSubmissionService(nil, nil)
	isCorrect := true

	_, err := svc.ReviewAnswer(1, &util.Claims{UserID: 3, Role: model.Student}, &ReviewAnswerRequest{IsCorrect: &isCorrect})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.ReviewAnswer(1, nil, &ReviewAnswerRequest{IsCorrect: &isCorrect})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestGetResultAnonymousNotFound(t *testing.T) {
	svc := NewSubmissionService(nil, nil)

	_, err := svc.GetResult(1, nil)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestResolveChoices(t *testing.T) {
	choices := []model.Choice{
		{BaseModel: model.BaseModel{ID: 1}, Text: "a", IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 2}, Text: "b"},
		{BaseModel: model.BaseModel{ID: 3}, Text: "c", IsCorrect: true},
	}

	t.Run("resolves known ids", func(t *testing.T) {
		selected := resolveChoices(choices, []uint{1, 3})
		assert.Len(t, selected, 2)
		assert.Equal(t, uint(1), selected[0].ID)
		assert.Equal(t, uint(3), selected[1].ID)
	})

	t.Run("ignores ids from other questions", func(t *testing.T) {
		selected := resolveChoices(choices, []uint{1, 99})
		assert.Len(t, selected, 1)
		assert.Equal(t, uint(1), selected[0].ID)
	})

	t.Run("deduplicates repeated ids", func(t *testing.T) {
		selected := resolveChoices(choices, []uint{2, 2, 2})
		assert.Len(t, selected, 1)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, resolveChoices(choices, []uint{98, 99}))
	})
}

func TestCanAccessSubmission(t *testing.T) {
	owner := uint(7)
	other := uint(8)

	anonymous := &model.TestSubmission{}
	owned := &model.TestSubmission{UserID: &owner}

	t.Run("anonymous submission accessible to everyone", func(t *testing.T) {
		assert.True(t, canAccessSubmission(anonymous, nil))
		assert.True(t, canAccessSubmission(anonymous, &other))
	})

	t.Run("owned submission only accessible to owner", func(t *testing.T) {
		assert.True(t, canAccessSubmission(owned, &owner))
		assert.False(t, canAccessSubmission(owned, &other))
		assert.False(t, canAccessSubmission(owned, nil))
	})
}
