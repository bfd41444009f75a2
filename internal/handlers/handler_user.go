package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests on the current user's record.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	me := rg.Group("/users/me")
	{
		me.GET("", h.getCurrentUser)
		me.PATCH("", h.updateAccountDetails)
		me.POST("/password", h.changePassword)
		me.PATCH("/avatar", h.updateAvatar)
		me.PATCH("/cover-image", h.updateCoverImage)
		me.GET("/watch-history", h.getWatchHistory)
		me.POST("/watch-history", h.addToWatchHistory)
	}

	rg.GET("/channels/:username", h.getChannelProfile)
}

// getCurrentUser godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateAccountDetails godoc
// @Summary Update account details
// @Description Changes the full name and/or email of the current user.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *userHandler) updateAccountDetails(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAccountDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Param password body dto.ChangePasswordRequest true "Old and new password"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me/password [post]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondWithError(c, err, "Failed to change password")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateAvatar godoc
// @Summary Update avatar
// @Tags users
// @Accept json
// @Produce json
// @Param avatar body dto.UpdateAvatarRequest true "Avatar URL"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me/avatar [patch]
func (h *userHandler) updateAvatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAvatarRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		respondWithError(c, err, "Failed to update avatar")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateCoverImage godoc
// @Summary Update cover image
// @Description An empty coverImage removes the cover image.
// @Tags users
// @Accept json
// @Produce json
// @Param cover body dto.UpdateCoverImageRequest true "Cover image URL"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /users/me/cover-image [patch]
func (h *userHandler) updateCoverImage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCoverImageRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateCoverImage(c.Request.Context(), userID, req.CoverImage)
	if err != nil {
		respondWithError(c, err, "Failed to update cover image")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getWatchHistory godoc
// @Summary Get watch history
// @Tags users
// @Produce json
// @Success 200 {object} dto.WatchHistoryResponse
// @Security BearerAuth
// @Router /users/me/watch-history [get]
func (h *userHandler) getWatchHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	history, err := h.userService.GetWatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve watch history")
		return
	}

	c.JSON(http.StatusOK, dto.WatchHistoryResponse{VideoIDs: history})
}

// addToWatchHistory godoc
// @Summary Add a watched video
// @Tags users
// @Accept json
// @Param video body dto.AddWatchHistoryRequest true "Watched video"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me/watch-history [post]
func (h *userHandler) addToWatchHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddWatchHistoryRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.AddToWatchHistory(c.Request.Context(), userID, req.VideoID); err != nil {
		respondWithError(c, err, "Failed to update watch history")
		return
	}

	c.Status(http.StatusNoContent)
}

// getChannelProfile godoc
// @Summary Get a channel profile
// @Description Looks a user up by username (case-insensitive). Email and watch history are not exposed.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.ChannelProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /channels/{username} [get]
func (h *userHandler) getChannelProfile(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve channel")
		return
	}

	c.JSON(http.StatusOK, dto.ToChannelProfileResponse(user))
}
