package model

import "time"

// Correctness 答案判定结果。pending 表示等待人工审阅，
// 在所有评分和汇总逻辑中都是显式分支，不参与得分。
type Correctness string

const (
	CorrectnessCorrect   Correctness = "correct"
	CorrectnessIncorrect Correctness = "incorrect"
	CorrectnessPending   Correctness = "pending"
)

// swagger:model TestSubmission
type TestSubmission struct {
	BaseModel
	TestID      uint       `gorm:"index;type:bigint unsigned;not null" json:"testId"`
	Test        *Test      `gorm:"foreignKey:TestID" json:"test,omitempty"`
	UserID      *uint      `gorm:"index;type:bigint unsigned" json:"userId"` // 匿名提交时为空
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score       *float64   `json:"score"` // 百分比，完成前为空
	StartTime   time.Time  `gorm:"autoCreateTime" json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	Answers     []Answer   `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (TestSubmission) TableName() string {
	return "test_submissions"
}

// swagger:model Answer
type Answer struct {
	BaseModel
	SubmissionID    uint        `gorm:"index;type:bigint unsigned;not null" json:"submissionId"`
	QuestionID      uint        `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Question        *Question   `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedChoices []Choice    `gorm:"many2many:answer_choices" json:"selectedChoices,omitempty"`
	TextAnswer      string      `gorm:"type:text" json:"textAnswer"`
	Correctness     Correctness `gorm:"type:enum('correct','incorrect','pending');default:'pending'" json:"correctness"`
	Feedback        string      `gorm:"type:text" json:"feedback"`
}

func (Answer) TableName() string {
	return "answers"
}
