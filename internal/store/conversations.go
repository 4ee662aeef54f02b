package store

import (
	"fmt"
	"sync"

	"github.com/i474232898/greentrack/internal/advisor"
	"github.com/i474232898/greentrack/internal/common"
)

// ConversationStore keeps advisor conversations in memory. It implements
// advisor.ConversationStore; every read returns a copy.
type ConversationStore struct {
	mu   sync.RWMutex
	data map[string]*advisor.Conversation

	// maxMessages caps each conversation's log (0 = unlimited)
	maxMessages int
}

func NewConversationStore(maxMessages int) *ConversationStore {
	return &ConversationStore{
		data:        make(map[string]*advisor.Conversation),
		maxMessages: maxMessages,
	}
}

func (s *ConversationStore) Create(conv advisor.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[conv.ID]; exists {
		return fmt.Errorf("conversation %s already exists", conv.ID)
	}
	c := conv.Clone()
	s.data[conv.ID] = &c
	return nil
}

func (s *ConversationStore) Get(id string) (advisor.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data[id]
	if !ok {
		return advisor.Conversation{}, fmt.Errorf("conversation %s: %w", id, common.ErrNotFound)
	}
	return c.Clone(), nil
}

// Append adds messages to the end of the log, dropping the oldest entries
// once maxMessages is exceeded.
func (s *ConversationStore) Append(id string, msgs ...advisor.Message) (advisor.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data[id]
	if !ok {
		return advisor.Conversation{}, fmt.Errorf("conversation %s: %w", id, common.ErrNotFound)
	}
	c.Messages = append(c.Messages, msgs...)

	if s.maxMessages > 0 && len(c.Messages) > s.maxMessages {
		over := len(c.Messages) - s.maxMessages
		c.Messages = append([]advisor.Message(nil), c.Messages[over:]...)
	}
	return c.Clone(), nil
}
