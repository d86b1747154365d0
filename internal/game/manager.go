package game

import (
	"errors"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kiliankoe/wordquest/internal/catalog"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidPhase    = errors.New("invalid phase for action")
	ErrInvalidLevel    = errors.New("invalid level")
	ErrLevelLocked     = errors.New("level locked")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrUnknownAction   = errors.New("unknown action")
)

// ManagerListener receives the events of every session, tagged with the session code.
type ManagerListener func(code string, ev Event)

type RoomManager struct {
	mu       sync.RWMutex
	sessions map[string]*SessionCtx
	active   string // most recently created session, used in single-session mode

	words     []catalog.Word
	defaults  SessionConfig
	opts      []Option
	listeners []ManagerListener
}

// NewRoomManager creates sessions over words. defaults supplies the pacing and unlock policy;
// opts are applied to every session.
func NewRoomManager(words []catalog.Word, defaults SessionConfig, opts ...Option) *RoomManager {
	defaults.ApplyDefaults()
	return &RoomManager{
		sessions: make(map[string]*SessionCtx),
		words:    words,
		defaults: defaults,
		opts:     opts,
	}
}

// CreateSession starts a new game. Only the mode and word count of cfg are taken from the caller.
func (rm *RoomManager) CreateSession(cfg SessionConfig) (code string, hostToken string, err error) {
	merged := rm.defaults
	if cfg.Mode.Valid() {
		merged.Mode = cfg.Mode
	}
	if cfg.WordCount > 0 {
		merged.WordCount = cfg.WordCount
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	code = randomCode(5)
	for rm.sessions[code] != nil {
		code = randomCode(5)
	}
	hostToken = uuid.NewString()
	opts := append([]Option{withIdentity(code, hostToken)}, rm.opts...)
	s := NewSession(rm.words, merged, opts...)
	s.Subscribe(func(ev Event) { rm.notify(code, ev) })
	rm.sessions[code] = s
	rm.active = code
	return code, hostToken, nil
}

// Subscribe registers a listener for the events of every session.
func (rm *RoomManager) Subscribe(l ManagerListener) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.listeners = append(rm.listeners, l)
}

func (rm *RoomManager) notify(code string, ev Event) {
	rm.mu.RLock()
	ls := append([]ManagerListener(nil), rm.listeners...)
	rm.mu.RUnlock()
	for _, l := range ls {
		l(code, ev)
	}
}

func (rm *RoomManager) Get(code string) (*SessionCtx, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	s := rm.sessions[code]
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (rm *RoomManager) Active() (string, *SessionCtx) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	if rm.active == "" {
		return "", nil
	}
	return rm.active, rm.sessions[rm.active]
}

// Remove tears a session down, cancelling its timers.
func (rm *RoomManager) Remove(code string) error {
	rm.mu.Lock()
	s := rm.sessions[code]
	if s == nil {
		rm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(rm.sessions, code)
	if rm.active == code {
		rm.active = ""
	}
	rm.mu.Unlock()
	s.Close()
	return nil
}

// Codes lists live session codes in sorted order.
func (rm *RoomManager) Codes() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	out := make([]string, 0, len(rm.sessions))
	for code := range rm.sessions {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Close removes every session.
func (rm *RoomManager) Close() {
	for _, code := range rm.Codes() {
		_ = rm.Remove(code)
	}
}

func (rm *RoomManager) Words() []catalog.Word {
	return append([]catalog.Word(nil), rm.words...)
}

func randomCode(n int) string {
	letters := []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
