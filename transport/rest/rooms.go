package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/doodle-backend/internal/entity"
)

type roomsResponse struct {
	Rooms []entity.RoomSummary `json:"rooms"`
}

// roomsHandler - the lobby listing for clients that are not connected yet.
func roomsHandler(rooms roomLister) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, roomsResponse{Rooms: rooms.Rooms()})
	}
}
