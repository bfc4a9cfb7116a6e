package router

import (
	"go-modernart/controller"
	"go-modernart/middleware"
	"go-modernart/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine) {
	// 游戏接口路由
	api := r.Group("/room")
	{
		api.POST("/create", controller.CreateRoom)
		api.GET("/list", controller.GetRoomList)
		api.GET("/online", controller.GetOnlineCount)
		api.POST("/delete", middleware.AuthMiddleware(), controller.DeleteRoom)
		api.GET("/:roomID", controller.GetRoomInfo)
	}

	// WebSocket 路由
	r.GET("/ws", ws.HandleWebSocket)
}
