// 示例课程数据导入脚本
//
// 创建《Растрлық және векторлық графика》示例课程及课时、测试数据，
// 已存在同名课程时先删除再重建。
//
// 用法: go run scripts/seed_example_course.go

package main

import (
	"log"

	"graphicourse_backend/internal/config"
	"graphicourse_backend/internal/model"
	"graphicourse_backend/pkg/database"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if err := seedGraphicsCourse(db); err != nil {
		log.Fatalf("导入示例课程失败: %v", err)
	}

	log.Println("示例课程导入完成")
}

func seedGraphicsCourse(db *gorm.DB) error {
	courseName := "Растрлық және векторлық графика"

	return db.Transaction(func(tx *gorm.DB) error {
		// 清理旧数据
		var old model.Course
		if err := tx.Where("name = ?", courseName).First(&old).Error; err == nil {
			if err := tx.Where("course_id = ?", old.ID).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&old).Error; err != nil {
				return err
			}
		}

		course := &model.Course{
			Name:        courseName,
			Description: "Компьютерлік графиканың негіздерін, растрлық және векторлық кескіндермен жұмыс істеу принциптерін үйреніңіз.",
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		lesson1 := &model.Lesson{
			CourseID:         course.ID,
			Title:            "Растрлық және векторлық графиканың негіздері",
			ShortDescription: "Графика түрлері және олардың айырмашылықтары",
			Description:      "<h3>Растрлық және векторлық графика</h3><p>Растрлық графика пиксельдерден тұрады, ал векторлық графика математикалық формулалар арқылы сипатталады.</p>",
			VideoURL:         "https://www.youtube.com/watch?v=AkFi90lZmXA",
		}
		if err := tx.Create(lesson1).Error; err != nil {
			return err
		}

		test1 := &model.Test{
			LessonID:     lesson1.ID,
			Title:        "Тест: Графика негіздері",
			Description:  "Бұл тест графика түрлері бойынша білімді тексеруге арналған.",
			PassingScore: 70,
			TimeLimit:    30,
			Questions: []model.Question{
				{
					Text:         "Растрлық кескін неден тұрады?",
					QuestionType: model.MultipleChoice,
					Points:       1,
					Order:        1,
					Choices: []model.Choice{
						{Text: "Математикалық формулалардан", IsCorrect: false},
						{Text: "Пиксельдерден", IsCorrect: true},
						{Text: "Қаріптерден", IsCorrect: false},
					},
				},
				{
					Text:         "Масштабтау кезінде сапасын жоғалтпайтын графика түрлерін таңдаңыз.",
					QuestionType: model.MultipleChoice,
					Points:       2,
					Order:        2,
					Choices: []model.Choice{
						{Text: "Векторлық графика", IsCorrect: true},
						{Text: "Растрлық графика", IsCorrect: false},
						{Text: "SVG форматындағы кескіндер", IsCorrect: true},
					},
				},
				{
					Text:          "Векторлық графиканың артықшылықтарын сипаттаңыз.",
					QuestionType:  model.OpenEnded,
					Points:        2,
					Order:         3,
					CorrectAnswer: "масштабтау кезінде сапа сақталады, файл өлшемі кіші, математикалық формулалар арқылы сипатталады",
					Explanation:   "Векторлық графика координаталар мен формулаларға негізделген.",
				},
			},
		}
		if err := tx.Create(test1).Error; err != nil {
			return err
		}

		lesson2 := &model.Lesson{
			CourseID:         course.ID,
			Title:            "Түстер модельдері және түспен жұмыс істеу принциптері",
			ShortDescription: "RGB, CMYK және HSB түс модельдері",
			Description:      "<h3>Түстер модельдері</h3><p>RGB мониторлар үшін, CMYK басып шығару үшін қолданылады.</p>",
		}
		if err := tx.Create(lesson2).Error; err != nil {
			return err
		}

		test2 := &model.Test{
			LessonID:    lesson2.ID,
			Title:       "Тест: Түстер модельдері",
			Description: "Бұл тест түс модельдері бойынша білімді тексеруге арналған.",
			Questions: []model.Question{
				{
					Text:         "Басып шығару үшін қандай түс моделі қолданылады?",
					QuestionType: model.MultipleChoice,
					Points:       1,
					Order:        1,
					Choices: []model.Choice{
						{Text: "RGB", IsCorrect: false},
						{Text: "CMYK", IsCorrect: true},
						{Text: "HSB", IsCorrect: false},
					},
				},
				{
					Text:          "RGB және CMYK модельдерінің айырмашылығын түсіндіріңіз.",
					QuestionType:  model.OpenEnded,
					Points:        2,
					Order:         2,
					CorrectAnswer: "аддитивті модель экранда жарық арқылы, субтрактивті модель бояу арқылы түс қалыптастырады",
				},
			},
		}
		if err := tx.Create(test2).Error; err != nil {
			return err
		}

		log.Printf("Created course %q with %d lessons", course.Name, 2)
		return nil
	})
}
