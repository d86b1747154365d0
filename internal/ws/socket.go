package ws

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/kiliankoe/wordquest/internal/config"
	"github.com/kiliankoe/wordquest/internal/game"
)

type ConnCtx struct {
	Code  string
	Token string
}

type Server struct {
	RM      *game.RoomManager
	config  config.Config
	io      *socketio.Server
	mu      sync.Mutex
	members map[string]map[string]socketio.Conn // sessionCode -> socketID -> Conn
}

func New(rm *game.RoomManager, cfg config.Config) *Server {
	srv := &Server{RM: rm, config: cfg, members: make(map[string]map[string]socketio.Conn)}
	rm.Subscribe(srv.onGameEvent)
	return srv
}

// Mount attaches Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)
	srv.io = io

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:create
	io.OnEvent("/", "game:create", func(s socketio.Conn, payload struct {
		Config game.SessionConfig `json:"config"`
	}) map[string]any {
		if srv.config.SingleSession {
			srv.RM.Close()
		}
		code, hostToken, err := srv.RM.CreateSession(payload.Config)
		if err != nil {
			return srv.err(s, "create_failed", err.Error())
		}
		srv.attach(s, code, hostToken)
		log.Info().Str("sid", s.ID()).Str("code", code).Msg("game:create")
		srv.emitStateTo(code)
		return map[string]any{"sessionCode": code, "hostToken": hostToken}
	})

	// game:resume (reconnection)
	io.OnEvent("/", "game:resume", func(s socketio.Conn, payload struct {
		SessionCode string `json:"sessionCode"`
		Token       string `json:"token"`
	}) map[string]any {
		sess, err := srv.RM.Get(payload.SessionCode)
		if err != nil {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if err := sess.Authorize(payload.Token); err != nil {
			return srv.err(s, "unauthorized", "Invalid host token")
		}
		srv.attach(s, payload.SessionCode, payload.Token)
		log.Info().Str("sid", s.ID()).Str("code", payload.SessionCode).Msg("game:resume")
		s.Emit("game:state", sess.Snapshot())
		return map[string]any{"ok": true}
	})

	// game:action carries any Action; the named events below are shorthands.
	io.OnEvent("/", "game:action", func(s socketio.Conn, a game.Action) map[string]any {
		return srv.apply(s, a)
	})
	io.OnEvent("/", "game:reveal", func(s socketio.Conn, payload struct {
		Position int `json:"position"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionReveal, Position: payload.Position})
	})
	io.OnEvent("/", "game:drop", func(s socketio.Conn, payload struct {
		WordID int `json:"wordId"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionDrop, WordID: payload.WordID})
	})
	io.OnEvent("/", "game:guess", func(s socketio.Conn, payload struct {
		WordID   int    `json:"wordId"`
		Position int    `json:"position"`
		Letter   string `json:"letter"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionGuess, WordID: payload.WordID, Position: payload.Position, Letter: payload.Letter})
	})
	io.OnEvent("/", "game:retry", func(s socketio.Conn, payload struct {
		WordID int `json:"wordId"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionRetry, WordID: payload.WordID})
	})
	io.OnEvent("/", "game:selectLevel", func(s socketio.Conn, payload struct {
		Level int `json:"level"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionSelectLevel, Level: payload.Level})
	})
	io.OnEvent("/", "game:setMode", func(s socketio.Conn, payload struct {
		Mode game.Mode `json:"mode"`
	}) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionSetMode, Mode: payload.Mode})
	})
	io.OnEvent("/", "game:advance", func(s socketio.Conn) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionAdvance})
	})
	io.OnEvent("/", "game:restartLevel", func(s socketio.Conn) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionRestartLevel})
	})
	io.OnEvent("/", "game:restart", func(s socketio.Conn) map[string]any {
		return srv.apply(s, game.Action{Type: game.ActionRestart})
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if ctx, ok := s.Context().(*ConnCtx); ok && ctx.Code != "" {
			srv.removeMember(ctx.Code, s)
		}
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	// Mount to router
	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	// Basic CORS preflight for Socket.IO POST
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

func (srv *Server) attach(s socketio.Conn, code, token string) {
	s.SetContext(&ConnCtx{Code: code, Token: token})
	s.Join(code)
	srv.addMember(code, s)
}

// apply runs one action for the session the connection is attached to. Events it
// produces reach the room through onGameEvent.
func (srv *Server) apply(s socketio.Conn, a game.Action) map[string]any {
	ctx, _ := s.Context().(*ConnCtx)
	if ctx == nil || ctx.Code == "" {
		return srv.err(s, "session_not_found", "Session not found")
	}
	sess, err := srv.RM.Get(ctx.Code)
	if err != nil {
		return srv.err(s, "session_not_found", "Session not found")
	}
	if err := sess.Authorize(ctx.Token); err != nil {
		return srv.err(s, "unauthorized", "Invalid host token")
	}
	if err := sess.Apply(a); err != nil {
		code := "bad_request"
		if errors.Is(err, game.ErrSessionNotFound) {
			code = "session_not_found"
		}
		return srv.err(s, code, err.Error())
	}
	log.Debug().Str("code", ctx.Code).Str("action", string(a.Type)).Msg("game:action")
	srv.emitStateTo(ctx.Code)
	return map[string]any{"ok": true}
}

func (srv *Server) onGameEvent(code string, ev game.Event) {
	log.Info().Str("code", code).Str("event", string(ev.Type)).Int("level", ev.Level).Msg("game event")
	if srv.io != nil {
		srv.io.BroadcastToRoom("/", code, "game:event", ev)
	}
	if ev.Summary != nil && srv.config.ExportEnabled {
		if err := game.ExportSummary(srv.config.ExportFile, code, ev); err != nil {
			log.Error().Err(err).Str("code", code).Msg("failed to export results")
		} else {
			log.Info().Str("code", code).Str("file", srv.config.ExportFile).Msg("exported results")
		}
	}
	// apply refreshes the state after caller actions; delayed callbacks have no caller.
	// Their first event is enough, later ones from the same callback see the same state.
	if ev.Deferred {
		switch ev.Type {
		case game.EventMatch, game.EventMismatch, game.EventFeedbackCleared:
			srv.emitStateTo(code)
		}
	}
}

func (srv *Server) addMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.members[code] == nil {
		srv.members[code] = make(map[string]socketio.Conn)
	}
	srv.members[code][c.ID()] = c
}

func (srv *Server) removeMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m := srv.members[code]; m != nil {
		delete(m, c.ID())
		if len(m) == 0 {
			delete(srv.members, code)
		}
	}
}

func (srv *Server) conns(code string) []socketio.Conn {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	out := make([]socketio.Conn, 0, len(srv.members[code]))
	for _, c := range srv.members[code] {
		out = append(out, c)
	}
	return out
}

func (srv *Server) emitStateTo(code string) {
	sess, err := srv.RM.Get(code)
	if err != nil {
		return
	}
	snap := sess.Snapshot()
	for _, c := range srv.conns(code) {
		c.Emit("game:state", snap)
	}
}

func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
	s.Emit("error", map[string]any{"code": code, "message": message})
	return map[string]any{"error": message}
}
