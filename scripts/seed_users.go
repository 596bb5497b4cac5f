// 初始化演示账号脚本
//
// 为空库创建三个角色各一个账号（admin / trainer / observer），
// 已存在同名账号时跳过。仅用于本地开发和验收环境。
//
// 用法: go run scripts/seed_users.go

package main

import (
	"errors"
	"log"

	"skilltrack_backend/internal/config"
	"skilltrack_backend/internal/model"
	"skilltrack_backend/internal/repository"
	"skilltrack_backend/pkg/database"
	"skilltrack_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedAccounts = []model.User{
	{Username: "admin", Email: "admin@skilltrack.local", Role: model.RoleAdmin},
	{Username: "trainer", Email: "trainer@skilltrack.local", Role: model.RoleTrainer},
	{Username: "observer", Email: "observer@skilltrack.local", Role: model.RoleObserver},
}

const seedPassword = "ChangeMe_2026!"

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	for _, account := range seedAccounts {
		if _, err := users.FindByUsername(account.Username); err == nil {
			log.Printf("账号 %s 已存在，跳过", account.Username)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("查询账号 %s 失败: %v", account.Username, err)
		}

		account.Password = string(hash)
		if err := users.Create(&account); err != nil {
			log.Fatalf("创建账号 %s 失败: %v", account.Username, err)
		}
		log.Printf("已创建账号 %s (%s)", account.Username, account.Role)
	}

	log.Println("完成！")
}
