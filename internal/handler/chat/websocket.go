package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/mindcare/backend/internal/middleware"
	chatService "github.com/zhouzirui/mindcare/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// wsConn 串行化写操作；gorilla 连接只允许一个并发写者。
type wsConn struct {
	conn      *websocket.Conn
	sessionID string

	mu sync.Mutex
}

func (c *wsConn) send(msgType string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(outgoingMessage{
		Type:      msgType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// handleWebSocket 处理实时聊天连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.chatSvc.Session(r.Context(), sessionID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "session", sessionID, "error", err)
		return
	}
	defer raw.Close()

	conn := &wsConn{conn: raw, sessionID: sessionID}
	h.logger.Infow("websocket connected", "session", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = raw.SetReadDeadline(time.Now().Add(readTimeout))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.pingLoop(ctx, conn)

	// 断开连接不取消回复生成：回复照常写入会话，重连后可从记录中取回
	resolveCtx := context.WithoutCancel(r.Context())

	var inflight sync.WaitGroup
	defer inflight.Wait()

	for {
		var msg inboundMessage
		if err := raw.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnw("websocket read error", "session", sessionID, "error", err)
			}
			cancel()
			return
		}
		_ = raw.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.Type != "message" {
			h.sendError(conn, "unsupported message type")
			continue
		}

		var text TextMessage
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			h.sendError(conn, "invalid text payload")
			continue
		}
		// 在读循环中占位，保证先到的消息获得回复，后到的收到 busy
		pending, err := h.chatSvc.Accept(sessionID, userID, text.Text)
		switch {
		case errors.Is(err, chatService.ErrResolutionInFlight):
			h.sendEvent(conn, "busy", map[string]string{"message": err.Error()})
			continue
		case err != nil:
			h.sendError(conn, err.Error())
			continue
		case pending == nil:
			continue
		}

		h.sendEvent(conn, "message", pending.User())
		h.sendEvent(conn, "composing", map[string]bool{"composing": true})

		inflight.Add(1)
		go func() {
			defer inflight.Done()
			h.deliverReply(resolveCtx, conn, pending)
		}()
	}
}

// deliverReply resolves an accepted submission and pushes the reply.
func (h *Handler) deliverReply(ctx context.Context, conn *wsConn, pending *chatService.Pending) {
	exchange := pending.Resolve(ctx)
	if exchange == nil {
		return
	}

	h.sendEvent(conn, "message", exchange.Reply)
	h.sendEvent(conn, "composing", map[string]bool{"composing": false})
}

func (h *Handler) sendEvent(conn *wsConn, msgType string, data interface{}) {
	if err := conn.send(msgType, data); err != nil {
		h.logger.Debugw("websocket write failed", "session", conn.sessionID, "type", msgType, "error", err)
	}
}

func (h *Handler) sendError(conn *wsConn, message string) {
	h.sendEvent(conn, "error", map[string]string{"message": message})
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, conn *wsConn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
