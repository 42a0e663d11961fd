package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// WatchHandler handles watch room requests
type WatchHandler struct {
	watch  usecase.WatchUseCase
	logger coreport.Logger
}

// NewWatchHandler creates a new watch handler instance
func NewWatchHandler(watch usecase.WatchUseCase, logger coreport.Logger) *WatchHandler {
	return &WatchHandler{watch: watch, logger: logger}
}

// CreateRoom handles POST /rooms
func (h *WatchHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	room, err := h.watch.CreateRoom(c.Request.Context(), actor(c), entity.NewRoom{
		Name:      req.Name,
		VideoURL:  req.VideoURL,
		IsPrivate: req.IsPrivate,
	})
	if err != nil {
		respondError(c, h.logger, "create_room", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRoomResponse(room))
}

// ListRooms handles GET /rooms
func (h *WatchHandler) ListRooms(c *gin.Context) {
	rooms, err := h.watch.ListRooms(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_rooms", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoomList(rooms))
}

// GetRoom handles GET /rooms/:roomId
func (h *WatchHandler) GetRoom(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	room, err := h.watch.GetRoom(c.Request.Context(), actor(c), roomID)
	if err != nil {
		respondError(c, h.logger, "get_room", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoomResponse(room))
}

// JoinRoom handles POST /rooms/:roomId/join
func (h *WatchHandler) JoinRoom(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	if err := h.watch.JoinRoom(c.Request.Context(), actor(c), roomID); err != nil {
		respondError(c, h.logger, "join_room", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveRoom handles POST /rooms/:roomId/leave
func (h *WatchHandler) LeaveRoom(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	if err := h.watch.LeaveRoom(c.Request.Context(), actor(c), roomID); err != nil {
		respondError(c, h.logger, "leave_room", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoom handles DELETE /admin/rooms/:roomId
func (h *WatchHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	if err := h.watch.DeleteRoom(c.Request.Context(), actor(c), roomID); err != nil {
		respondError(c, h.logger, "delete_room", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Play handles POST /rooms/:roomId/play
func (h *WatchHandler) Play(c *gin.Context) { h.control(c, entity.CommandPlay) }

// Pause handles POST /rooms/:roomId/pause
func (h *WatchHandler) Pause(c *gin.Context) { h.control(c, entity.CommandPause) }

// Seek handles POST /rooms/:roomId/seek
func (h *WatchHandler) Seek(c *gin.Context) { h.control(c, entity.CommandSeek) }

func (h *WatchHandler) control(c *gin.Context, cmd entity.PlaybackCommand) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	var req dto.PlaybackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}

	room, err := h.watch.Control(c.Request.Context(), actor(c), roomID, cmd, *req.Time)
	if err != nil {
		respondError(c, h.logger, string(cmd), err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRoomResponse(room))
}

// ListParticipants handles GET /rooms/:roomId/participants
func (h *WatchHandler) ListParticipants(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	participants, err := h.watch.ListParticipants(c.Request.Context(), actor(c), roomID)
	if err != nil {
		respondError(c, h.logger, "list_participants", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewParticipantList(participants))
}

// Invite handles POST /rooms/:roomId/invite
func (h *WatchHandler) Invite(c *gin.Context) {
	roomID, ok := idParam(c, "roomId", errs.ErrRoomNotFound)
	if !ok {
		return
	}
	var req dto.TargetUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	if err := h.watch.InviteToRoom(c.Request.Context(), actor(c), roomID, req.UserID); err != nil {
		respondError(c, h.logger, "invite_to_room", err)
		return
	}
	c.Status(http.StatusNoContent)
}
