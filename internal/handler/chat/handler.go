package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/middleware"
	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
	chatService "github.com/zhouzirui/mindcare/backend/internal/service/chat"
	"github.com/zhouzirui/mindcare/backend/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	logger  *zap.SugaredLogger
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{chatSvc: chatSvc, logger: logger}
}

// RegisterPublicRoutes 注册无需登录的路由
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/prompts", h.handlePrompts)
}

// RegisterRoutes 注册需要登录的聊天路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStartSession)
	r.Get("/session/{sessionID}/messages", h.handleTranscript)
	r.Post("/session/{sessionID}/messages", h.handleSubmit)
	r.Delete("/session/{sessionID}", h.handleEndSession)
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type sessionResponse struct {
	Session  chat.Session   `json:"session"`
	Messages []chat.Message `json:"messages"`
}

// handlePrompts 返回快捷提问
func (h *Handler) handlePrompts(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.chatSvc.QuickPrompts())
}

// handleStartSession 创建会话并返回欢迎语
func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	session, greeting, err := h.chatSvc.StartSession(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sessionResponse{
		Session:  session,
		Messages: []chat.Message{greeting},
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.Session(r.Context(), sessionID, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	messages, err := h.chatSvc.Transcript(r.Context(), sessionID, userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessionResponse{Session: session, Messages: messages})
}

// handleSubmit 提交用户消息并同步返回回复
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// 客户端断开不应让回复变成道歉语写入会话；委托策略自带超时
	exchange, err := h.chatSvc.Submit(context.WithoutCancel(r.Context()), sessionID, userID, payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if exchange == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.RespondJSON(w, http.StatusOK, exchange)
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.chatSvc.EndSession(r.Context(), chi.URLParam(r, "sessionID"), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrResolutionInFlight):
		utils.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, chatService.ErrUserRequired):
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Errorw("chat request failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
