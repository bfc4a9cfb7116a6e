package controller

import (
	"net/http"

	"go-modernart/repository"
	"go-modernart/ws"

	"github.com/gin-gonic/gin"
)

func GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")

	info, err := ws.GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomID":     roomID,
		"status":     info.GameStatus,
		"maxPlayers": info.MaxPlayers,
		"aiPlayers":  info.AIPlayers,
	})
}
