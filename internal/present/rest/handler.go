package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/present/rest/presenter"
	"github.com/yomogi/ghostboard/internal/service"
	"github.com/yomogi/ghostboard/internal/usecase"
)

type Handler struct {
	feed       *usecase.FeedUsecase
	confession *usecase.ConfessionUsecase
	engagement *usecase.EngagementUsecase
	session    *usecase.SessionUsecase
	signal     *service.SignalService
}

func NewHandler(
	feed *usecase.FeedUsecase,
	confession *usecase.ConfessionUsecase,
	engagement *usecase.EngagementUsecase,
	session *usecase.SessionUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		feed:       feed,
		confession: confession,
		engagement: engagement,
		session:    session,
		signal:     signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)
	e.POST("/api/session", h.handleSession)
	e.POST("/api/confess", h.handleConfess)
	e.GET("/api/confessions", h.handleConfessions)
	e.POST("/api/like", h.handleLike)
	e.GET("/api/likes/:confessionId", h.handleLikeStatus)
	e.POST("/api/comment", h.handleComment)
	e.GET("/api/comments/:confessionId", h.handleComments)
	e.POST("/api/bookmark", h.handleBookmark)
	e.GET("/api/bookmarks/:userId", h.handleBookmarks)
	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSession(c echo.Context) error {
	ctx := c.Request().Context()

	issued, err := h.session.Issue(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, issued)
}

type confessRequest struct {
	Text          string   `json:"text"`
	Tags          []string `json:"tags"`
	AllowComments *bool    `json:"allowComments"`
}

func (h *Handler) handleConfess(c echo.Context) error {
	ctx := c.Request().Context()

	var req confessRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	input := usecase.SubmitInput{
		Text:          req.Text,
		Tags:          req.Tags,
		AllowComments: req.AllowComments,
		AuthorID:      requesterID(ctx, ""),
	}

	confession, err := h.confession.Submit(ctx, input)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"success":    true,
		"id":         confession.ID,
		"text":       confession.Text,
		"tags":       confession.Tags,
		"created_at": confession.CreatedAt,
	})
}

func (h *Handler) handleConfessions(c echo.Context) error {
	ctx := c.Request().Context()

	feed, err := h.feed.GetFeed(ctx)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, feed)
}

type likeRequest struct {
	ConfessionID string `json:"confessionId"`
	UserID       string `json:"userId"`
}

func (h *Handler) handleLike(c echo.Context) error {
	ctx := c.Request().Context()

	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	liked, count, err := h.engagement.ToggleLike(ctx, req.ConfessionID, requesterID(ctx, req.UserID))
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"success":  true,
		"newCount": count,
		"isLiked":  liked,
	})
}

func (h *Handler) handleLikeStatus(c echo.Context) error {
	ctx := c.Request().Context()

	confessionID := c.Param("confessionId")
	userID := requesterID(ctx, c.QueryParam("userId"))

	count, liked, err := h.engagement.LikeStatus(ctx, confessionID, userID)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{
		"count":   count,
		"isLiked": liked,
	})
}

type commentRequest struct {
	ConfessionID string `json:"confessionId"`
	UserID       string `json:"userId"`
	Text         string `json:"text"`
}

func (h *Handler) handleComment(c echo.Context) error {
	ctx := c.Request().Context()

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	err := h.engagement.AddComment(ctx, req.ConfessionID, requesterID(ctx, req.UserID), req.Text)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{"success": true})
}

func (h *Handler) handleComments(c echo.Context) error {
	ctx := c.Request().Context()

	comments, err := h.engagement.ListComments(ctx, c.Param("confessionId"))
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, comments)
}

type bookmarkRequest struct {
	ConfessionID string `json:"confessionId"`
	UserID       string `json:"userId"`
}

func (h *Handler) handleBookmark(c echo.Context) error {
	ctx := c.Request().Context()

	var req bookmarkRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	bookmarked, err := h.engagement.ToggleBookmark(ctx, requesterID(ctx, req.UserID), req.ConfessionID)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, echo.Map{"isBookmarked": bookmarked})
}

func (h *Handler) handleBookmarks(c echo.Context) error {
	ctx := c.Request().Context()

	ids, err := h.engagement.ListBookmarks(ctx, c.Param("userId"))
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.OK(c, ids)
}

// requesterID prefers a verified token identity over the body's userId.
func requesterID(ctx context.Context, fallback string) string {
	if id, ok := ctx.Value(domain.RequesterIDCtxKey).(string); ok && id != "" {
		return id
	}
	return fallback
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if h.signal == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime is not configured"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.Event)
	go h.signal.Realtime(ctx, output)

	// reader exists only to detect close and swallow heartbeats
	go func() {
		defer cancel()
		for {
			var req struct {
				Type string `json:"type"`
			}
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-output:
			ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
