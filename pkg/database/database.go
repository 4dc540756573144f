package database

import (
	"fmt"
	"log"

	"graphicourse_backend/internal/config"
	"graphicourse_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Course{},
			&model.Lesson{},
			&model.Test{},
			&model.Question{},
			&model.Choice{},
			&model.TestSubmission{},
			&model.Answer{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 默认管理员账号（仅首次启动时创建）
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123456"), bcrypt.DefaultCost)
		if err == nil {
			admin := &model.User{
				Name:     "Administrator",
				Email:    "admin@graphicourse.local",
				Password: string(hashed),
				Role:     model.Admin,
			}
			db.Create(admin)
			log.Println("Default admin account created: admin@graphicourse.local")
		}
	}

	return db, nil
}
