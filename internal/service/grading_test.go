package service

import (
	"testing"

	"graphicourse_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcq(correctness ...bool) *model.Question {
	q := &model.Question{QuestionType: model.MultipleChoice, Points: 1}
	for i, c := range correctness {
		q.Choices = append(q.Choices, model.Choice{
			BaseModel: model.BaseModel{ID: uint(i + 1)},
			Text:      "choice",
			IsCorrect: c,
		})
	}
	return q
}

func pick(q *model.Question, ids ...uint) []model.Choice {
	var selected []model.Choice
	for _, id := range ids {
		for _, c := range q.Choices {
			if c.ID == id {
				selected = append(selected, c)
			}
		}
	}
	return selected
}

func TestEvaluateMultipleChoice(t *testing.T) {
	// 选项1和3为正确答案
	q := mcq(true, false, true)

	tests := []struct {
		name     string
		selected []uint
		want     model.Correctness
	}{
		{"exact correct set", []uint{1, 3}, model.CorrectnessCorrect},
		{"order does not matter", []uint{3, 1}, model.CorrectnessCorrect},
		{"strict subset", []uint{1}, model.CorrectnessIncorrect},
		{"superset with wrong choice", []uint{1, 2, 3}, model.CorrectnessIncorrect},
		{"only wrong choice", []uint{2}, model.CorrectnessIncorrect},
		{"correct plus wrong", []uint{1, 2}, model.CorrectnessIncorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateMultipleChoice(q, pick(q, tc.selected...))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateMultipleChoiceSingleCorrect(t *testing.T) {
	q := mcq(false, true, false)

	assert.Equal(t, model.CorrectnessCorrect, EvaluateMultipleChoice(q, pick(q, 2)))
	assert.Equal(t, model.CorrectnessIncorrect, EvaluateMultipleChoice(q, pick(q, 1)))
	assert.Equal(t, model.CorrectnessIncorrect, EvaluateMultipleChoice(q, pick(q, 1, 2)))
}

func TestKeyTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"comma separated",
			"rasterization pipeline, vertex shading, fragment processing",
			[]string{"rasterization pipeline", "vertex shading", "fragment processing"},
		},
		{
			"periods and semicolons split like commas",
			"Linear interpolation. Depth buffering; Texture mapping",
			[]string{"linear interpolation", "depth buffering", "texture mapping"},
		},
		{
			"short terms dropped",
			"RGB, CMYK, color model theory",
			[]string{"color model theory"},
		},
		{
			"six character terms qualify",
			"Volume, Velocity, Variety",
			[]string{"volume", "velocity", "variety"},
		},
		{
			"all terms too short",
			"RGB, HSV, CMYK",
			nil,
		},
		{
			"blank input",
			"   ",
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keyTerms(tc.input))
		})
	}
}

func TestEvaluateOpenEnded(t *testing.T) {
	tests := []struct {
		name         string
		modelAnswer  string
		answer       string
		want         model.Correctness
		wantFeedback string
	}{
		{
			"above threshold is correct",
			"vector graphics, scalable images, mathematical formulas",
			"Vector graphics are described by mathematical formulas.",
			model.CorrectnessCorrect,
			"Your answer matched 2 out of 3 key concepts.",
		},
		{
			"below threshold is incorrect",
			"vector graphics, scalable images, mathematical formulas, coordinate systems",
			"I do not remember this topic at all.",
			model.CorrectnessIncorrect,
			"Your answer matched 0 out of 4 key concepts.",
		},
		{
			"exactly one of three meets threshold",
			"vector graphics, scalable images, coordinate systems",
			"something about vector graphics only",
			model.CorrectnessCorrect,
			"Your answer matched 1 out of 3 key concepts.",
		},
		{
			"six character terms all matched",
			"Volume, Velocity, Variety",
			"volume velocity variety explained in detail",
			model.CorrectnessCorrect,
			"Your answer matched 3 out of 3 key concepts.",
		},
		{
			"no qualifying terms falls back to denominator one",
			"RGB, HSV, CMYK",
			"rgb hsv cmyk explained in detail",
			model.CorrectnessIncorrect,
			"Your answer matched 0 out of 1 key concepts.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, feedback := EvaluateOpenEnded(tc.modelAnswer, tc.answer)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantFeedback, feedback)
		})
	}
}

func TestEvaluateOpenEndedPending(t *testing.T) {
	// 无参考答案时留待人工审阅
	got, feedback := EvaluateOpenEnded("", "a thoughtful essay about rendering")
	assert.Equal(t, model.CorrectnessPending, got)
	assert.Empty(t, feedback)

	got, feedback = EvaluateOpenEnded("   ", "another essay")
	assert.Equal(t, model.CorrectnessPending, got)
	assert.Empty(t, feedback)

	got, _ = EvaluateOpenEnded("reference answer with terms", "")
	assert.Equal(t, model.CorrectnessPending, got)
}

func TestComputeScore(t *testing.T) {
	twoPoint := &model.Question{Points: 2}
	onePoint := &model.Question{Points: 1}

	t.Run("mixed answers", func(t *testing.T) {
		answers := []model.Answer{
			{Question: twoPoint, Correctness: model.CorrectnessCorrect},
			{Question: onePoint, Correctness: model.CorrectnessIncorrect},
		}
		score, total := ComputeScore(answers)
		require.Equal(t, 3, total)
		assert.InDelta(t, 66.67, score, 0.01)
	})

	t.Run("pending earns nothing but counts toward total", func(t *testing.T) {
		answers := []model.Answer{
			{Question: twoPoint, Correctness: model.CorrectnessCorrect},
			{Question: onePoint, Correctness: model.CorrectnessPending},
		}
		score, total := ComputeScore(answers)
		require.Equal(t, 3, total)
		assert.InDelta(t, 66.67, score, 0.01)
	})

	t.Run("all correct", func(t *testing.T) {
		answers := []model.Answer{
			{Question: twoPoint, Correctness: model.CorrectnessCorrect},
			{Question: onePoint, Correctness: model.CorrectnessCorrect},
		}
		score, total := ComputeScore(answers)
		assert.Equal(t, 3, total)
		assert.Equal(t, 100.0, score)
	})

	t.Run("no answers", func(t *testing.T) {
		score, total := ComputeScore(nil)
		assert.Equal(t, 0, total)
		assert.Equal(t, 0.0, score)
	})
}

// 对应完整流程：2分选择题（正确答案A、C）+ 1分主观题（作答未命中任何关键概念）。
// 首次自动评分约66.67，人工判对后重算为100。
func TestGradingScenarioWithReview(t *testing.T) {
	mcQuestion := mcq(true, false, true)
	mcQuestion.Points = 2
	openQuestion := &model.Question{
		QuestionType:  model.OpenEnded,
		Points:        1,
		CorrectAnswer: "Volume, Velocity, Variety",
	}

	answers := []model.Answer{
		{
			Question:    mcQuestion,
			Correctness: EvaluateMultipleChoice(mcQuestion, pick(mcQuestion, 1, 3)),
		},
	}
	openCorrectness, _ := EvaluateOpenEnded(openQuestion.CorrectAnswer, "big data has three main characteristics")
	answers = append(answers, model.Answer{Question: openQuestion, Correctness: openCorrectness})

	require.Equal(t, model.CorrectnessCorrect, answers[0].Correctness)
	require.Equal(t, model.CorrectnessIncorrect, answers[1].Correctness)

	score, total := ComputeScore(answers)
	require.Equal(t, 3, total)
	assert.InDelta(t, 66.67, score, 0.01)

	// 人工审阅判定主观题正确后重算
	answers[1].Correctness = model.CorrectnessCorrect
	score, total = ComputeScore(answers)
	require.Equal(t, 3, total)
	assert.Equal(t, 100.0, score)
}
