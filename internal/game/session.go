package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiliankoe/wordquest/internal/catalog"
	"github.com/kiliankoe/wordquest/internal/deck"
)

// SessionCtx owns every piece of state for one game. All mutation happens under mu;
// deferred actions re-acquire it and are discarded once the level they belong to is torn down.
type SessionCtx struct {
	Code      string
	CreatedAt time.Time
	HostToken string

	mu     sync.Mutex
	config SessionConfig
	words  []catalog.Word
	rng    *rand.Rand
	sched  Scheduler
	log    zerolog.Logger

	level    int
	phase    Phase
	unlocked map[int]bool
	finished bool
	closed   bool

	engine    *MatchEngine
	turns     *Turns
	sentences *SentenceQueue
	crossword *Crossword
	timer     *SessionTimer

	// level 4 tallies
	attempts int
	correct  int

	feedback      Feedback
	feedbackSeq   int
	feedbackTimer Timer
	evalTimer     Timer
	epoch         int

	pending   []Event
	deferred  bool // inside a scheduler callback
	listeners []Listener
}

type Option func(*SessionCtx)

func WithScheduler(s Scheduler) Option { return func(c *SessionCtx) { c.sched = s } }

// WithRand sets the shuffle source. The source must not be shared between sessions.
func WithRand(r *rand.Rand) Option { return func(c *SessionCtx) { c.rng = r } }

func WithLogger(l zerolog.Logger) Option { return func(c *SessionCtx) { c.log = l } }

func withIdentity(code, hostToken string) Option {
	return func(c *SessionCtx) {
		c.Code = code
		c.HostToken = hostToken
	}
}

// NewSession builds a session over the first cfg.WordCount catalog words and starts level 1.
func NewSession(words []catalog.Word, cfg SessionConfig, opts ...Option) *SessionCtx {
	cfg.ApplyDefaults()
	s := &SessionCtx{
		CreatedAt: time.Now().UTC(),
		config:    cfg,
		words:     catalog.Slice(words, cfg.WordCount),
		sched:     RealScheduler{},
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.timer = NewSessionTimer(s.sched)
	s.resetUnlocked()
	s.startLevelLocked(1)
	return s
}

// Subscribe registers a listener for every future event.
func (s *SessionCtx) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// do runs fn under the lock and then delivers the events it produced.
func (s *SessionCtx) do(fn func()) {
	_ = s.doErr(func() error {
		fn()
		return nil
	})
}

func (s *SessionCtx) doErr(fn func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	err := fn()
	evs := s.pending
	s.pending = nil
	ls := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, ev := range evs {
		for _, l := range ls {
			l(ev)
		}
	}
	return err
}

func (s *SessionCtx) emit(ev Event) {
	if ev.Level == 0 {
		ev.Level = s.level
	}
	if ev.Phase == "" {
		ev.Phase = s.phase
	}
	ev.Deferred = s.deferred
	s.pending = append(s.pending, ev)
}

func (s *SessionCtx) resetUnlocked() {
	s.unlocked = map[int]bool{1: true}
	if s.config.UnlockAll {
		for l := 2; l <= FinalLevel; l++ {
			s.unlocked[l] = true
		}
	}
}

// startLevelLocked throws away all per-level state and deals the level fresh.
func (s *SessionCtx) startLevelLocked(level int) {
	s.epoch++
	s.cancelPendingLocked()

	s.level = level
	s.finished = false
	s.feedback = FeedbackNone
	s.turns = NewTurns(s.config.Mode)
	s.attempts, s.correct = 0, 0
	s.engine, s.sentences, s.crossword = nil, nil, nil

	if level <= deck.MaxLevel {
		tokens, err := deck.Build(level, s.words, s.rng)
		if err != nil {
			panic(fmt.Sprintf("game: build deck: %v", err))
		}
		s.engine = NewMatchEngine(tokens, deck.GroupSize(level))
		s.phase = PhasePlaying
	} else {
		s.sentences = NewSentenceQueue(s.words, s.rng)
		s.crossword = NewCrossword(s.words)
		s.phase = PhaseSentences
	}
	s.timer.Start()
	s.log.Debug().Str("code", s.Code).Int("level", level).Str("mode", string(s.config.Mode)).Msg("level started")
}

func (s *SessionCtx) cancelPendingLocked() {
	if s.evalTimer != nil {
		s.evalTimer.Stop()
		s.evalTimer = nil
	}
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
	s.feedbackSeq++
}

// Reveal turns the card at pos face up. Invalid requests are ignored.
func (s *SessionCtx) Reveal(pos int) {
	s.do(func() {
		if s.phase != PhasePlaying || s.engine == nil {
			return
		}
		if !s.engine.Reveal(pos) {
			return
		}
		if s.engine.Full() {
			s.scheduleEvaluationLocked()
		}
	})
}

func (s *SessionCtx) scheduleEvaluationLocked() {
	if s.config.EvalDelay <= 0 {
		s.evaluateLocked()
		return
	}
	epoch := s.epoch
	s.evalTimer = s.sched.AfterFunc(s.config.EvalDelay, func() {
		s.do(func() {
			if s.epoch != epoch || s.engine == nil || !s.engine.Full() {
				return
			}
			s.evalTimer = nil
			s.deferred = true
			s.evaluateLocked()
			s.deferred = false
		})
	})
}

func (s *SessionCtx) evaluateLocked() {
	res := s.engine.Evaluate()
	actor := s.turns.Observe(SourceMatch, res.Matched)
	s.log.Debug().Str("code", s.Code).Int("level", s.level).Bool("matched", res.Matched).
		Int("moves", s.engine.Moves()).Msg("evaluated group")
	if !res.Matched {
		s.emit(Event{Type: EventMismatch, Player: actor})
		return
	}
	ev := Event{Type: EventMatch, WordID: res.WordID, Player: actor, Correct: true}
	if w, ok := catalog.ByID(s.words, res.WordID); ok {
		ev.Word = &w
	}
	s.emit(ev)
	if s.engine.Complete() {
		s.completeLevelLocked()
	}
}

func (s *SessionCtx) completeLevelLocked() {
	if s.finished {
		return
	}
	s.finished = true
	s.phase = PhaseLevelComplete
	s.timer.Stop()
	s.unlocked[s.level+1] = true
	sum := s.summaryLocked()
	s.log.Debug().Str("code", s.Code).Int("level", s.level).Int("moves", sum.Moves).Msg("level complete")
	s.emit(Event{Type: EventLevelComplete, Summary: &sum})
}

func (s *SessionCtx) summaryLocked() Summary {
	sum := Summary{Level: s.level, Mode: s.config.Mode, ElapsedSeconds: s.timer.Elapsed()}
	if s.engine != nil {
		sum.Moves = s.engine.Moves()
		sum.Accuracy = Accuracy(s.engine.WordCount(), sum.Moves)
	} else {
		sum.Moves = s.attempts
		sum.Accuracy = Accuracy(s.correct, s.attempts)
	}
	if s.config.Mode == ModePair {
		sum.Scores = s.turns.Scores()
	}
	return sum
}

// Drop judges a word dropped on the blank of the current sentence.
func (s *SessionCtx) Drop(wordID int) {
	s.do(func() {
		if s.phase != PhaseSentences {
			return
		}
		correct, ok := s.sentences.Drop(wordID)
		if !ok {
			return
		}
		s.recordAttemptLocked(correct)
		actor := s.turns.Observe(SourceSentence, correct)
		s.emit(Event{Type: EventSentenceResult, WordID: wordID, Player: actor, Correct: correct})
		if s.sentences.Done() {
			s.phase = PhaseSentencesDone
			s.emit(Event{Type: EventSentencesComplete})
		}
	})
}

// GuessLetter writes one crossword cell; a full row is graded immediately.
func (s *SessionCtx) GuessLetter(wordID, pos int, ch rune) {
	s.do(func() {
		if s.phase != PhaseCrossword {
			return
		}
		res, ok := s.crossword.GuessLetter(wordID, pos, ch)
		if !ok {
			return
		}
		s.recordAttemptLocked(res.Solved)
		actor := s.turns.Observe(SourceCrossword, res.Solved)
		s.emit(Event{Type: EventCrosswordResult, WordID: wordID, Player: actor, Correct: res.Solved, Grades: res.Grades})
		if s.crossword.Done() {
			s.finishGameLocked()
		}
	})
}

// RetryWord clears the buffer of a graded, unsolved crossword word.
func (s *SessionCtx) RetryWord(wordID int) {
	s.do(func() {
		if s.phase != PhaseCrossword {
			return
		}
		s.crossword.Retry(wordID)
	})
}

func (s *SessionCtx) recordAttemptLocked(correct bool) {
	s.attempts++
	fb := FeedbackIncorrect
	if correct {
		s.correct++
		fb = FeedbackCorrect
	}
	s.setFeedbackLocked(fb)
}

// setFeedbackLocked shows transient feedback; a newer feedback supersedes the pending clear.
func (s *SessionCtx) setFeedbackLocked(fb Feedback) {
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
	s.feedbackSeq++
	s.feedback = fb
	if s.config.FeedbackDelay <= 0 {
		s.feedback = FeedbackNone
		return
	}
	seq := s.feedbackSeq
	s.feedbackTimer = s.sched.AfterFunc(s.config.FeedbackDelay, func() {
		s.do(func() {
			if s.feedbackSeq != seq {
				return
			}
			s.feedback = FeedbackNone
			s.feedbackTimer = nil
			s.deferred = true
			s.emit(Event{Type: EventFeedbackCleared})
			s.deferred = false
		})
	})
}

func (s *SessionCtx) finishGameLocked() {
	if s.finished {
		return
	}
	s.finished = true
	s.phase = PhaseFinished
	s.timer.Stop()
	sum := s.summaryLocked()
	s.log.Debug().Str("code", s.Code).Int("elapsed", sum.ElapsedSeconds).Msg("game complete")
	s.emit(Event{Type: EventGameComplete, Summary: &sum})
}

// Advance moves past a completed level, or from the sentence phase to the crossword.
func (s *SessionCtx) Advance() error {
	return s.doErr(func() error {
		switch s.phase {
		case PhaseLevelComplete:
			if s.level >= FinalLevel {
				return ErrInvalidPhase
			}
			s.startLevelLocked(s.level + 1)
		case PhaseSentencesDone:
			s.phase = PhaseCrossword
			s.log.Debug().Str("code", s.Code).Msg("crossword started")
		default:
			return ErrInvalidPhase
		}
		s.emit(Event{Type: EventPhaseChange})
		return nil
	})
}

// SelectLevel restarts play on any unlocked level.
func (s *SessionCtx) SelectLevel(level int) error {
	return s.doErr(func() error {
		if level < 1 || level > FinalLevel {
			return ErrInvalidLevel
		}
		if !s.unlocked[level] {
			return ErrLevelLocked
		}
		s.startLevelLocked(level)
		s.emit(Event{Type: EventPhaseChange})
		return nil
	})
}

// SetMode switches between solo and pair play, restarting the current level.
func (s *SessionCtx) SetMode(mode Mode) error {
	return s.doErr(func() error {
		if !mode.Valid() {
			return ErrInvalidMode
		}
		s.config.Mode = mode
		s.startLevelLocked(s.level)
		s.emit(Event{Type: EventPhaseChange})
		return nil
	})
}

// RestartLevel deals the current level again.
func (s *SessionCtx) RestartLevel() {
	s.do(func() {
		s.startLevelLocked(s.level)
		s.emit(Event{Type: EventPhaseChange})
	})
}

// Restart returns to level 1 with the unlocked set reset.
func (s *SessionCtx) Restart() {
	s.do(func() {
		s.resetUnlocked()
		s.startLevelLocked(1)
		s.emit(Event{Type: EventPhaseChange})
	})
}

// Close cancels every pending deferred action; the session ignores all later calls.
func (s *SessionCtx) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
	s.cancelPendingLocked()
	s.timer.Stop()
}

// Authorize checks a host token.
func (s *SessionCtx) Authorize(token string) error {
	if token == "" || token != s.HostToken {
		return ErrUnauthorized
	}
	return nil
}

func (s *SessionCtx) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *SessionCtx) GetPhase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *SessionCtx) Words() []catalog.Word {
	return append([]catalog.Word(nil), s.words...)
}
