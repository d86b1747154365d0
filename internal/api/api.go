package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/wordquest/internal/game"
)

// HostTokenHeader authorizes session mutations over HTTP.
const HostTokenHeader = "X-Host-Token"

type Handler struct {
	RM            *game.RoomManager
	SingleSession bool
}

func New(rm *game.RoomManager, singleSession bool) *Handler {
	return &Handler{RM: rm, SingleSession: singleSession}
}

// Register mounts the JSON API under /api.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api")
	g.GET("/catalog", h.catalog)
	g.GET("/session/active", h.active)
	g.POST("/sessions", h.create)
	g.GET("/sessions/:code", h.snapshot)
	g.POST("/sessions/:code/actions", h.action)
	g.DELETE("/sessions/:code", h.remove)
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"words": h.RM.Words()})
}

func (h *Handler) active(c *gin.Context) {
	if code, sess := h.RM.Active(); sess != nil {
		c.JSON(http.StatusOK, gin.H{"sessionCode": code})
		return
	}
	c.Status(http.StatusNotFound)
}

type createReq struct {
	Config game.SessionConfig `json:"config"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_config"})
			return
		}
	}
	if h.SingleSession {
		h.RM.Close()
	}
	code, hostToken, err := h.RM.CreateSession(req.Config)
	if err != nil {
		writeErr(c, err)
		return
	}
	log.Info().Str("code", code).Str("mode", string(req.Config.Mode)).Msg("api: session created")
	c.JSON(http.StatusCreated, gin.H{"sessionCode": code, "hostToken": hostToken})
}

func (h *Handler) snapshot(c *gin.Context) {
	sess, err := h.RM.Get(c.Param("code"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) action(c *gin.Context) {
	sess, ok := h.authorized(c)
	if !ok {
		return
	}
	var a game.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_action"})
		return
	}
	if err := sess.Apply(a); err != nil {
		writeErr(c, err)
		return
	}
	log.Debug().Str("code", sess.Code).Str("action", string(a.Type)).Msg("api: action")
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) remove(c *gin.Context) {
	sess, ok := h.authorized(c)
	if !ok {
		return
	}
	if err := h.RM.Remove(sess.Code); err != nil {
		writeErr(c, err)
		return
	}
	log.Info().Str("code", sess.Code).Msg("api: session removed")
	c.Status(http.StatusNoContent)
}

func (h *Handler) authorized(c *gin.Context) (*game.SessionCtx, bool) {
	sess, err := h.RM.Get(c.Param("code"))
	if err != nil {
		writeErr(c, err)
		return nil, false
	}
	if err := sess.Authorize(c.GetHeader(HostTokenHeader)); err != nil {
		writeErr(c, err)
		return nil, false
	}
	return sess, true
}

func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, game.ErrInvalidPhase), errors.Is(err, game.ErrLevelLocked):
		status = http.StatusConflict
	case errors.Is(err, game.ErrInvalidLevel), errors.Is(err, game.ErrInvalidMode), errors.Is(err, game.ErrUnknownAction):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
