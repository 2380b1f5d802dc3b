package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enablehq/enable/logging"
	"github.com/enablehq/enable/models"
	"github.com/enablehq/enable/repositories/chats"
	"github.com/enablehq/enable/repositories/costs"
	"github.com/enablehq/enable/repositories/messages"
)

// ErrNotFound is returned by update operations when the target record does
// not exist.
var ErrNotFound = errors.New("not found")

// DefaultRecentLimit caps RecentChats when the caller passes limit <= 0.
const DefaultRecentLimit = 20

// ChatUpdate is a partial update of a chat. Nil fields stay untouched;
// UpdatedAt is always bumped.
type ChatUpdate struct {
	Title      *string
	Model      *string
	Visibility *models.Visibility
	TotalCost  *float64
}

// GroupedChats buckets chats by recency of their last activity. The buckets
// are disjoint and together contain every chat; within a bucket chats are
// ordered most recent first.
type GroupedChats struct {
	Today     []models.Chat
	Yesterday []models.Chat
	LastWeek  []models.Chat
	LastMonth []models.Chat
	Older     []models.Chat
}

// ChatService owns the chat and message lifecycle, including the cascade
// that keeps messages and cost records from outliving their chat.
type ChatService struct {
	chats    chats.Repository
	messages messages.Repository
	costs    costs.Repository
	log      logging.Logger
	now      func() time.Time
}

// NewChatService wires a ChatService. A nil logger is replaced with a no-op.
func NewChatService(c chats.Repository, m messages.Repository, cs costs.Repository, log logging.Logger) *ChatService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ChatService{chats: c, messages: m, costs: cs, log: log, now: time.Now}
}

// CreateChat creates a chat with the given title and model. An empty id gets
// a fresh UUID. The new chat starts private with a zero cost figure and
// identical created/updated timestamps.
func (s *ChatService) CreateChat(ctx context.Context, id, title, model string) (*models.Chat, error) {
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now().UnixMilli()
	chat := &models.Chat{
		ID:         id,
		Title:      title,
		Model:      model,
		Visibility: models.VisibilityPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.chats.Save(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// GetChat returns the chat with the given id, or (nil, nil) when absent.
func (s *ChatService) GetChat(ctx context.Context, id string) (*models.Chat, error) {
	return s.chats.Get(ctx, id)
}

// AllChats returns every chat, most recently updated first. Read failures
// degrade to an empty list.
func (s *ChatService) AllChats(ctx context.Context) []models.Chat {
	all, err := s.chats.GetAll(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load chats", "error", err)
		return nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt > all[j].UpdatedAt
	})
	return all
}

// UpdateChat applies a partial update and bumps UpdatedAt. Returns
// ErrNotFound when the chat does not exist.
func (s *ChatService) UpdateChat(ctx context.Context, id string, update ChatUpdate) (*models.Chat, error) {
	chat, err := s.chats.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("failed to update chat %s: %w", id, ErrNotFound)
	}

	if update.Title != nil {
		chat.Title = *update.Title
	}
	if update.Model != nil {
		chat.Model = *update.Model
	}
	if update.Visibility != nil {
		chat.Visibility = *update.Visibility
	}
	if update.TotalCost != nil {
		chat.TotalCost = *update.TotalCost
	}
	chat.UpdatedAt = s.now().UnixMilli()

	if err := s.chats.Save(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to update chat %s: %w", id, err)
	}
	return chat, nil
}

// UpdateChatTitle renames a chat.
func (s *ChatService) UpdateChatTitle(ctx context.Context, id, title string) error {
	_, err := s.UpdateChat(ctx, id, ChatUpdate{Title: &title})
	return err
}

// DeleteChat removes a chat together with its messages and cost records.
// Deleting an absent chat is a no-op.
func (s *ChatService) DeleteChat(ctx context.Context, id string) error {
	msgs, err := s.messages.GetByChatID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if err := s.messages.DeleteMany(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}

	records, err := s.costs.GetByChatID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}
	recordIDs := make([]string, 0, len(records))
	for _, r := range records {
		recordIDs = append(recordIDs, r.ID)
	}
	if err := s.costs.DeleteMany(ctx, recordIDs); err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}

	if err := s.chats.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete chat %s: %w", id, err)
	}
	return nil
}

// DeleteAllChats removes every chat and its dependents.
func (s *ChatService) DeleteAllChats(ctx context.Context) error {
	all, err := s.chats.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete all chats: %w", err)
	}
	for _, chat := range all {
		if err := s.DeleteChat(ctx, chat.ID); err != nil {
			return err
		}
	}
	return nil
}

// SaveMessage upserts a message and bumps the parent chat's UpdatedAt. A
// missing parent leaves the chat side alone; the message is still saved.
func (s *ChatService) SaveMessage(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt == 0 {
		message.CreatedAt = s.now().UnixMilli()
	}
	if err := s.messages.Save(ctx, message); err != nil {
		return fmt.Errorf("failed to save message %s: %w", message.ID, err)
	}

	chat, err := s.chats.Get(ctx, message.ChatID)
	if err != nil {
		return fmt.Errorf("failed to save message %s: %w", message.ID, err)
	}
	if chat == nil {
		s.log.Warn(ctx, "message saved for unknown chat", "chat_id", message.ChatID)
		return nil
	}

	chat.UpdatedAt = s.now().UnixMilli()
	if err := s.chats.Save(ctx, chat); err != nil {
		return fmt.Errorf("failed to save message %s: %w", message.ID, err)
	}
	return nil
}

// SaveMessages saves messages in order.
func (s *ChatService) SaveMessages(ctx context.Context, msgs []*models.Message) error {
	for _, m := range msgs {
		if err := s.SaveMessage(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Message returns a single message, or (nil, nil) when absent.
func (s *ChatService) Message(ctx context.Context, id string) (*models.Message, error) {
	return s.messages.Get(ctx, id)
}

// UpdateMessage replaces a message's parts. Returns ErrNotFound when the
// message does not exist.
func (s *ChatService) UpdateMessage(ctx context.Context, id string, parts []models.Part) error {
	message, err := s.messages.Get(ctx, id)
	if err != nil {
		return err
	}
	if message == nil {
		return fmt.Errorf("failed to update message %s: %w", id, ErrNotFound)
	}

	message.Parts = parts
	if err := s.messages.Save(ctx, message); err != nil {
		return fmt.Errorf("failed to update message %s: %w", id, err)
	}
	return nil
}

// DeleteMessage removes a single message. Absent ids are not an error.
func (s *ChatService) DeleteMessage(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}

// MessagesByChat returns the chat's messages in conversation order. Read
// failures degrade to an empty list.
func (s *ChatService) MessagesByChat(ctx context.Context, chatID string) []models.Message {
	msgs, err := s.messages.GetByChatID(ctx, chatID)
	if err != nil {
		s.log.Error(ctx, "failed to load messages", "chat_id", chatID, "error", err)
		return nil
	}
	return msgs
}

// ChatCount returns the number of chats.
func (s *ChatService) ChatCount(ctx context.Context) (int, error) {
	all, err := s.chats.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chats: %w", err)
	}
	return len(all), nil
}

// MessageCount returns the number of messages across all chats.
func (s *ChatService) MessageCount(ctx context.Context) (int, error) {
	all, err := s.messages.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return len(all), nil
}

// SearchChats returns chats whose title contains the query,
// case-insensitively, most recently updated first. An empty query matches
// everything.
func (s *ChatService) SearchChats(ctx context.Context, query string) []models.Chat {
	all := s.AllChats(ctx)
	if query == "" {
		return all
	}

	needle := strings.ToLower(query)
	matched := make([]models.Chat, 0, len(all))
	for _, chat := range all {
		if strings.Contains(strings.ToLower(chat.Title), needle) {
			matched = append(matched, chat)
		}
	}
	return matched
}

// RecentChats returns up to limit chats, most recently updated first. A
// non-positive limit falls back to DefaultRecentLimit.
func (s *ChatService) RecentChats(ctx context.Context, limit int) []models.Chat {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	all := s.AllChats(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// ChatsGrouped buckets every chat by the age of its last activity: under a
// day, under two days, under a week, under thirty days, older.
func (s *ChatService) ChatsGrouped(ctx context.Context) GroupedChats {
	now := s.now()
	day := now.Add(-24 * time.Hour).UnixMilli()
	twoDays := now.Add(-48 * time.Hour).UnixMilli()
	week := now.Add(-7 * 24 * time.Hour).UnixMilli()
	month := now.Add(-30 * 24 * time.Hour).UnixMilli()

	var g GroupedChats
	for _, chat := range s.AllChats(ctx) {
		switch {
		case chat.UpdatedAt > day:
			g.Today = append(g.Today, chat)
		case chat.UpdatedAt > twoDays:
			g.Yesterday = append(g.Yesterday, chat)
		case chat.UpdatedAt > week:
			g.LastWeek = append(g.LastWeek, chat)
		case chat.UpdatedAt > month:
			g.LastMonth = append(g.LastMonth, chat)
		default:
			g.Older = append(g.Older, chat)
		}
	}
	return g
}
