package service

import (
	"fmt"
	"strings"

	"graphicourse_backend/internal/model"
)

// openEndedThreshold 主观题关键概念匹配率达到该值即判为正确
const openEndedThreshold = 0.30

// keyTerms 从参考答案或作答文本中提取关键概念：
// 统一小写后按逗号切分（句号、分号视同逗号），仅保留长度大于5的词组。
func keyTerms(text string) []string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.ReplaceAll(normalized, ".", ",")
	normalized = strings.ReplaceAll(normalized, ";", ",")

	var terms []string
	for _, part := range strings.Split(normalized, ",") {
		term := strings.TrimSpace(part)
		if len(term) > 5 {
			terms = append(terms, term)
		}
	}
	return terms
}

// EvaluateMultipleChoice 精确集合判分：所选选项必须与正确选项完全一致。
// 多选、漏选或选中错误项均判为错误。
func EvaluateMultipleChoice(question *model.Question, selected []model.Choice) model.Correctness {
	correctTotal := 0
	for _, choice := range question.Choices {
		if choice.IsCorrect {
			correctTotal++
		}
	}

	selectedCorrect := 0
	for _, choice := range selected {
		if choice.IsCorrect {
			selectedCorrect++
		}
	}

	if len(selected) == selectedCorrect && selectedCorrect == correctTotal {
		return model.CorrectnessCorrect
	}
	return model.CorrectnessIncorrect
}

// EvaluateOpenEnded 按关键概念覆盖率对主观题自动判分。
// 无参考答案或作答为空时返回 pending，留待人工复核。
func EvaluateOpenEnded(correctAnswer, textAnswer string) (model.Correctness, string) {
	if strings.TrimSpace(correctAnswer) == "" || strings.TrimSpace(textAnswer) == "" {
		return model.CorrectnessPending, ""
	}

	expected := keyTerms(correctAnswer)
	answerText := strings.ToLower(strings.TrimSpace(textAnswer))

	matched := 0
	for _, term := range expected {
		if strings.Contains(answerText, term) {
			matched++
		}
	}

	total := len(expected)
	if total == 0 {
		total = 1
	}

	feedback := fmt.Sprintf("Your answer matched %d out of %d key concepts.", matched, total)
	if float64(matched)/float64(total) >= openEndedThreshold {
		return model.CorrectnessCorrect, feedback
	}
	return model.CorrectnessIncorrect, feedback
}

// ComputeScore 计算提交的百分制得分及总分值。
// 判为正确的作答得满分值，pending 和错误作答计0分；总分值为0时得分为0。
func ComputeScore(answers []model.Answer) (float64, int) {
	totalPoints := 0
	earnedPoints := 0
	for _, answer := range answers {
		if answer.Question == nil {
			continue
		}
		totalPoints += answer.Question.Points
		if answer.Correctness == model.CorrectnessCorrect {
			earnedPoints += answer.Question.Points
		}
	}
	if totalPoints == 0 {
		return 0, 0
	}
	return float64(earnedPoints) / float64(totalPoints) * 100, totalPoints
}
