package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/bromolabs/bromo-server/internal/memory"
	"github.com/bromolabs/bromo-server/internal/models"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&memory.Fact{},
		&memory.ChatRun{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}
