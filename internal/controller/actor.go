package controller

import (
	"skilltrack_backend/internal/service"
	"skilltrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// actorFrom 从 JWT claims 构造显式传入工作流的 Actor，
// 取不到时返回 nil 并已写出 401
func actorFrom(ctx *gin.Context) *service.Actor {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}
	return &service.Actor{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
}
