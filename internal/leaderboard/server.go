package leaderboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taubyte/example-games-tower-blocks/internal/storage"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// ScoreStore is the persistence the server needs.
type ScoreStore interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
	TopPlayers(limit int) ([]storage.PlayerBest, error)
	PlayerScores(player string, limit int) ([]storage.ScoreEntry, error)
}

// ServerConfig configures a leaderboard Server.
type ServerConfig struct {
	Addr       string
	Store      ScoreStore
	Logger     *log.Logger
	Middleware []gin.HandlerFunc
}

// Server is a reference implementation of the leaderboard service.
type Server struct {
	router *gin.Engine
	store  ScoreStore
	logger *log.Logger
	addr   string
}

// NewServer builds the router and registers the routes.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(cfg.Middleware...)

	s := &Server{
		router: router,
		store:  cfg.Store,
		logger: cfg.Logger,
		addr:   cfg.Addr,
	}
	s.setupRoutes()
	return s
}

// Router exposes the engine so callers can mount extra routes.
func (s *Server) Router() *gin.Engine { return s.router }

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/leaderboard", s.handleLeaderboard)
	s.router.GET("/score", s.handlePlayerScore)
	s.router.POST("/score", s.handleSubmit)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Leaderboard API listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Stopping leaderboard API")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	top, err := s.store.TopPlayers(TopLimit)
	if err != nil {
		s.logger.Error("Cannot load leaderboard", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load leaderboard"})
		return
	}

	out := make([]Score, 0, len(top))
	for _, p := range top {
		out = append(out, toScore(p.Player, p.Score, p.UpdatedAt))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handlePlayerScore(c *gin.Context) {
	player := strings.TrimSpace(c.Query("player_name"))
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_name is required"})
		return
	}

	scores, err := s.store.PlayerScores(player, 1)
	if err != nil {
		s.logger.Error("Cannot load player score", "player", player, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load score"})
		return
	}
	if len(scores) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		return
	}
	c.JSON(http.StatusOK, toScore(scores[0].Player, scores[0].Score, scores[0].CreatedAt))
}

func (s *Server) handleSubmit(c *gin.Context) {
	var data tower.GameStateData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed game state"})
		return
	}
	if err := Validate(data); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	perfect := 0
	for _, e := range data.GameEvents {
		if e.EventType == tower.EventPerfectPlacement {
			perfect++
		}
	}
	entry := storage.ScoreEntry{
		Player:     data.PlayerName,
		GameID:     gameID(data.GameID),
		Score:      PlacedBlocks(data.GameEvents),
		Perfect:    perfect,
		DurationMs: data.DurationMs,
	}
	if _, err := s.store.SaveScore(entry); err != nil {
		s.logger.Error("Cannot save score", "player", entry.Player, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save score"})
		return
	}

	s.logger.Info("Score accepted", "player", entry.Player, "score", entry.Score, "game", entry.GameID)
	c.JSON(http.StatusCreated, gin.H{"player_name": entry.Player, "score": entry.Score})
}

// gameID stores rounds without an id as "".
func gameID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func toScore(player string, score int, at time.Time) Score {
	s := Score{PlayerName: player, HighestScore: strconv.Itoa(score)}
	if !at.IsZero() {
		s.Timestamp = at.UnixMilli()
	}
	return s
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
