package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/animation"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/scene"
	"github.com/rocketscienceinc/tictactoe-board/pkg/identifier"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Game is what clients get back after every operation.
type Game struct {
	ID string `json:"id"`
	scene.Snapshot
	Move *scene.Move `json:"move,omitempty"`
}

// SessionManager hosts independent hot-seat games, one per session id.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	options     scene.Options
	boardSize   int

	now   func() time.Time
	newID func() string

	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

type Option func(*SessionManager)

func WithClock(now func() time.Time) Option {
	return func(that *SessionManager) {
		that.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(that *SessionManager) {
		that.newID = newID
	}
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, boardSize int, options scene.Options, opts ...Option) *SessionManager {
	manager := &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		options:     options,
		boardSize:   boardSize,

		now:   time.Now,
		newID: identifier.GenerateSessionID,

		locks: make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// CreateSession - starts a new game; a non-positive size falls back to the configured one.
func (that *SessionManager) CreateSession(ctx context.Context, boardSize int) (*Game, error) {
	log := that.logger.With("method", "CreateSession")

	if boardSize <= 0 {
		boardSize = that.boardSize
	}

	controller, err := scene.New(boardSize, that.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	now := that.now()
	session := &entity.Session{
		ID:        that.newID(),
		State:     controller.State(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("session created", "session", session.ID, "size", boardSize)

	return that.game(session.ID, controller, now, nil), nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*Game, error) {
	_, controller, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return that.game(id, controller, that.now(), nil), nil
}

// Click - plays (row, col) for whoever is to move.
func (that *SessionManager) Click(ctx context.Context, id string, row, col int) (*Game, error) {
	log := that.logger.With("method", "Click", "session", id)

	unlock := that.lock(id)
	defer unlock()

	session, controller, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := that.now()

	move, err := controller.HandleCellClick(row, col, now)
	if err != nil {
		return nil, fmt.Errorf("failed to handle click: %w", err)
	}

	if move.Claimed {
		if err = that.save(ctx, session, controller, now); err != nil {
			return nil, err
		}
	}

	if move.Winner != nil {
		log.Info("game won", "winner", move.Winner.String())
	}

	return that.game(id, controller, now, &move), nil
}

// Reset - starts the session's game over; refused while the victory celebration plays.
func (that *SessionManager) Reset(ctx context.Context, id string) (*Game, error) {
	log := that.logger.With("method", "Reset", "session", id)

	unlock := that.lock(id)
	defer unlock()

	session, controller, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := that.now()
	if err = controller.Reset(now); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	if err = that.save(ctx, session, controller, now); err != nil {
		return nil, err
	}

	log.Info("game reset")

	return that.game(id, controller, now, nil), nil
}

// Celebration - the victory frame at elapsed; a negative elapsed means "now".
func (that *SessionManager) Celebration(ctx context.Context, id string, elapsed time.Duration) (*animation.CelebrationFrame, error) {
	_, controller, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	celebration := controller.Celebration()
	if celebration == nil {
		return nil, nil //nolint: nilnil // no winner yet
	}

	if elapsed < 0 {
		elapsed = celebration.Elapsed(that.now())
	}

	frame := celebration.Frame(elapsed)

	return &frame, nil
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.locksMutex.Lock()
	delete(that.locks, id)
	that.locksMutex.Unlock()

	return nil
}

func (that *SessionManager) load(ctx context.Context, id string) (*entity.Session, *scene.Controller, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	controller, err := scene.Restore(session.State, session.Celebration, that.options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}

	return session, controller, nil
}

func (that *SessionManager) save(ctx context.Context, session *entity.Session, controller *scene.Controller, now time.Time) error {
	session.State = controller.State()
	session.Celebration = controller.CelebrationRecord()
	session.UpdatedAt = now

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *SessionManager) game(id string, controller *scene.Controller, now time.Time, move *scene.Move) *Game {
	return &Game{
		ID:       id,
		Snapshot: controller.Snapshot(now),
		Move:     move,
	}
}

// lock - serialises read-modify-write cycles on one session.
func (that *SessionManager) lock(id string) func() {
	that.locksMutex.Lock()
	mutex, ok := that.locks[id]
	if !ok {
		mutex = &sync.Mutex{}
		that.locks[id] = mutex
	}
	that.locksMutex.Unlock()

	mutex.Lock()

	return mutex.Unlock
}
