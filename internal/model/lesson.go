package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID         uint   `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	ShortDescription string `gorm:"size:500" json:"shortDescription"`
	VideoURL         string `gorm:"size:500" json:"videoUrl"`
	VideoDuration    int    `gorm:"default:0" json:"videoDuration"` // 视频时长（秒）
	Test             *Test  `gorm:"foreignKey:LessonID" json:"test,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonView 列表/详情响应，携带课时导航信息
type LessonView struct {
	Lesson
	HasTest      bool  `json:"hasTest"`
	TestID       *uint `json:"testId"`
	NextLessonID *uint `json:"nextLessonId"`
	PrevLessonID *uint `json:"prevLessonId"`
}
