package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/mindcare/backend/internal/analysis/category"
	"github.com/zhouzirui/mindcare/backend/internal/model/chat"
	"github.com/zhouzirui/mindcare/backend/internal/model/profile"
	"github.com/zhouzirui/mindcare/backend/internal/service/resolver"
)

var (
	ErrUserRequired       = errors.New("user id is required")
	ErrSessionNotFound    = errors.New("session not found")
	ErrResolutionInFlight = errors.New("a reply is already being composed")
)

const greetingTail = "I'm your mental health AI assistant. I'm here to provide emotional support and wellness guidance. How are you feeling today?"

// Exchange is the pair of messages produced by one accepted submission.
type Exchange struct {
	User  chat.Message `json:"user"`
	Reply chat.Message `json:"reply"`
}

type session struct {
	info         chat.Session
	conversation *chat.Conversation
	busy         atomic.Bool
}

// Service 管理会话状态，并串联 用户输入 → 追加 → 生成回复 → 追加 的流程。
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	resolver resolver.Resolver
	profiles profile.Directory
	logger   *zap.SugaredLogger
}

// NewService wires the chat flow. profiles may be nil, in which case every
// session gets the generic greeting.
func NewService(res resolver.Resolver, profiles profile.Directory, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		sessions: make(map[string]*session),
		resolver: res,
		profiles: profiles,
		logger:   logger,
	}
}

// StartSession creates a conversation for userID seeded with the greeting.
func (s *Service) StartSession(ctx context.Context, userID string) (chat.Session, chat.Message, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return chat.Session{}, chat.Message{}, ErrUserRequired
	}

	name := s.displayName(ctx, userID)
	info := chat.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: name,
		CreatedAt:   time.Now().UTC(),
	}

	greeting := chat.NewAssistantMessage(Greeting(name), category.StarterSuggestions())
	sess := &session{info: info, conversation: chat.NewConversation()}
	sess.conversation.Append(greeting)

	s.mu.Lock()
	s.sessions[info.ID] = sess
	s.mu.Unlock()

	s.logger.Infow("chat session started", "session", info.ID, "user", userID, "personalised", name != "")
	return info, greeting, nil
}

// Pending is an accepted submission whose reply has not been resolved yet.
// It holds the session's in-flight slot until Resolve returns.
type Pending struct {
	svc  *Service
	sess *session
	user chat.Message
	done atomic.Bool
}

// User returns the appended user message.
func (p *Pending) User() chat.Message {
	return p.user
}

// Resolve 生成回复、追加到会话并释放占用。只能调用一次。
func (p *Pending) Resolve(ctx context.Context) *Exchange {
	if !p.done.CompareAndSwap(false, true) {
		return nil
	}
	defer p.sess.busy.Store(false)

	reply := p.svc.resolver.Resolve(ctx, resolver.Request{
		Text:        p.user.Text,
		History:     slices.Collect(p.sess.conversation.All()),
		DisplayName: p.sess.info.DisplayName,
	})
	if !p.sess.conversation.Append(reply) {
		p.svc.logger.Warnw("resolver returned blank reply", "session", p.sess.info.ID)
	}

	return &Exchange{User: p.user, Reply: reply}
}

// Accept reserves the session's in-flight slot and appends the user message.
// Blank text is ignored and yields (nil, nil). While another submission holds
// the slot Accept fails with ErrResolutionInFlight, so the earliest caller
// always wins.
func (s *Service) Accept(sessionID, userID, text string) (*Pending, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	if !sess.busy.CompareAndSwap(false, true) {
		return nil, ErrResolutionInFlight
	}

	userMsg := chat.NewUserMessage(text)
	sess.conversation.Append(userMsg)
	return &Pending{svc: s, sess: sess, user: userMsg}, nil
}

// Submit 处理一条用户输入。空白输入被忽略，返回 (nil, nil)。
// A second submission while a reply is pending fails with ErrResolutionInFlight.
func (s *Service) Submit(ctx context.Context, sessionID, userID, text string) (*Exchange, error) {
	pending, err := s.Accept(sessionID, userID, text)
	if err != nil || pending == nil {
		return nil, err
	}
	return pending.Resolve(ctx), nil
}

// Composing reports whether a reply is being composed for the session.
func (s *Service) Composing(sessionID string) bool {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	return ok && sess.busy.Load()
}

// Session returns the session metadata.
func (s *Service) Session(_ context.Context, sessionID, userID string) (chat.Session, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return chat.Session{}, err
	}
	return sess.info, nil
}

// Transcript returns the conversation in display order.
func (s *Service) Transcript(_ context.Context, sessionID, userID string) ([]chat.Message, error) {
	sess, err := s.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return slices.Collect(sess.conversation.All()), nil
}

// EndSession discards the session and its conversation.
func (s *Service) EndSession(_ context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.info.UserID != userID {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)

	s.logger.Infow("chat session ended", "session", sessionID, "messages", sess.conversation.Len())
	return nil
}

// QuickPrompts 返回首页快捷入口。
func (s *Service) QuickPrompts() []category.QuickPrompt {
	return category.QuickPrompts()
}

// Greeting builds the opening assistant line.
func Greeting(displayName string) string {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return "Hello! " + greetingTail
	}
	return "Hello, " + displayName + "! " + greetingTail
}

func (s *Service) lookup(sessionID, userID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	// 他人的会话与不存在的会话不作区分
	if !ok || sess.info.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	if s.profiles == nil {
		return ""
	}

	name, err := s.profiles.DisplayName(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			s.logger.Warnw("display name lookup failed", "user", userID, "error", err)
		}
		return ""
	}
	return strings.TrimSpace(name)
}
