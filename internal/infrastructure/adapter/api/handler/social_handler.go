package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SocialHandler handles friendship, follow and block requests
type SocialHandler struct {
	social usecase.SocialUseCase
	logger coreport.Logger
}

// NewSocialHandler creates a new social handler instance
func NewSocialHandler(social usecase.SocialUseCase, logger coreport.Logger) *SocialHandler {
	return &SocialHandler{social: social, logger: logger}
}

// SendFriendRequest handles POST /friends/requests
func (h *SocialHandler) SendFriendRequest(c *gin.Context) {
	var req dto.TargetUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	friendship, err := h.social.SendFriendRequest(c.Request.Context(), actor(c), req.UserID)
	if err != nil {
		respondError(c, h.logger, "send_friend_request", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewFriendshipResponse(friendship))
}

// AcceptFriendRequest handles POST /friends/requests/:requestId/accept
func (h *SocialHandler) AcceptFriendRequest(c *gin.Context) {
	requestID, ok := idParam(c, "requestId", errs.ErrFriendRequestNotFound)
	if !ok {
		return
	}
	friendship, err := h.social.AcceptFriendRequest(c.Request.Context(), actor(c), requestID)
	if err != nil {
		respondError(c, h.logger, "accept_friend_request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFriendshipResponse(friendship))
}

// RejectFriendRequest handles DELETE /friends/requests/:requestId
func (h *SocialHandler) RejectFriendRequest(c *gin.Context) {
	requestID, ok := idParam(c, "requestId", errs.ErrFriendRequestNotFound)
	if !ok {
		return
	}
	if err := h.social.RejectFriendRequest(c.Request.Context(), actor(c), requestID); err != nil {
		respondError(c, h.logger, "reject_friend_request", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFriend handles DELETE /friends/:userId
func (h *SocialHandler) RemoveFriend(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	if err := h.social.RemoveFriend(c.Request.Context(), actor(c), userID); err != nil {
		respondError(c, h.logger, "remove_friend", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFriends handles GET /friends
func (h *SocialHandler) ListFriends(c *gin.Context) {
	friends, err := h.social.ListFriends(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_friends", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSummaryList(friends))
}

// ListPendingRequests handles GET /friends/requests
func (h *SocialHandler) ListPendingRequests(c *gin.Context) {
	requests, err := h.social.ListPendingRequests(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_friend_requests", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFriendRequestList(requests))
}

// Relationship handles GET /users/:userId/relationship
func (h *SocialHandler) Relationship(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	status, err := h.social.RelationshipStatus(c.Request.Context(), actor(c), userID)
	if err != nil {
		respondError(c, h.logger, "relationship_status", err)
		return
	}
	c.JSON(http.StatusOK, dto.RelationshipResponse{UserID: userID, Status: string(status)})
}

// Follow handles POST /follows/:userId
func (h *SocialHandler) Follow(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	created, err := h.social.Follow(c.Request.Context(), actor(c), userID)
	if err != nil {
		respondError(c, h.logger, "follow", err)
		return
	}
	c.JSON(http.StatusOK, dto.EdgeResponse{Changed: created})
}

// Unfollow handles DELETE /follows/:userId
func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	if err := h.social.Unfollow(c.Request.Context(), actor(c), userID); err != nil {
		respondError(c, h.logger, "unfollow", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFollowers handles GET /followers
func (h *SocialHandler) ListFollowers(c *gin.Context) {
	followers, err := h.social.ListFollowers(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_followers", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSummaryList(followers))
}

// ListFollowing handles GET /following
func (h *SocialHandler) ListFollowing(c *gin.Context) {
	following, err := h.social.ListFollowing(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_following", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSummaryList(following))
}

// Block handles POST /blocks/:userId
func (h *SocialHandler) Block(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	created, err := h.social.BlockUser(c.Request.Context(), actor(c), userID)
	if err != nil {
		respondError(c, h.logger, "block", err)
		return
	}
	c.JSON(http.StatusOK, dto.EdgeResponse{Changed: created})
}

// Unblock handles DELETE /blocks/:userId
func (h *SocialHandler) Unblock(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	if err := h.social.UnblockUser(c.Request.Context(), actor(c), userID); err != nil {
		respondError(c, h.logger, "unblock", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBlocked handles GET /blocks
func (h *SocialHandler) ListBlocked(c *gin.Context) {
	blocked, err := h.social.ListBlocked(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_blocked", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserSummaryList(blocked))
}
