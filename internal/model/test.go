package model

type QuestionType string

const (
	MultipleChoice QuestionType = "MCQ"
	OpenEnded      QuestionType = "OPEN"
)

// swagger:model Test
type Test struct {
	BaseModel
	LessonID     uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"lessonId"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PassingScore int        `gorm:"default:70" json:"passingScore"` // 及格百分比
	TimeLimit    int        `gorm:"default:30" json:"timeLimit"`    // 限时（分钟）
	Questions    []Question `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// swagger:model Question
type Question struct {
	BaseModel
	TestID        uint         `gorm:"index;type:bigint unsigned;not null" json:"testId"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	QuestionType  QuestionType `gorm:"type:enum('MCQ','OPEN');default:'MCQ'" json:"questionType"`
	Points        int          `gorm:"default:1" json:"points"`
	Order         int          `gorm:"column:display_order;default:0" json:"order"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"` // 开放题的参考答案，用于自动预评分
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Choices       []Choice     `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}
