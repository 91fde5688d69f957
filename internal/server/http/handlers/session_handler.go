package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/server/http/dto"
	"github.com/polkiloo/opeak/internal/server/http/middleware"
)

// SessionHandler exchanges an upstream login token for a service session.
type SessionHandler struct {
	facade SessionFacade
	maxAge int
}

// NewSessionHandler constructs SessionHandler. ttl bounds the session cookie.
func NewSessionHandler(facade SessionFacade, ttl time.Duration) *SessionHandler {
	return &SessionHandler{facade: facade, maxAge: int(ttl / time.Second)}
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Token)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.maxAge)
	c.JSON(http.StatusOK, dto.SessionResponse{Token: token, User: toUserResponse(*user)})
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}
