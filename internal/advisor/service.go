package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Greeting seeds every new conversation.
const Greeting = `Hello! I'm your GreenLedger AI Assistant. Ask me anything about carbon emissions, renewable energy, solar installations, or sustainability tips for India! Try asking about "solar panels for AC" or "LED lighting savings".`

var ErrEmptyMessage = errors.New("message text cannot be empty")

// ConversationStore persists conversations. Get and Append return copies.
type ConversationStore interface {
	Create(conv Conversation) error
	Get(id string) (Conversation, error)
	Append(id string, msgs ...Message) (Conversation, error)
}

// ChatService runs multi-turn conversations on top of a Responder.
type ChatService struct {
	responder *Responder
	store     ConversationStore
	now       func() time.Time
}

func NewChatService(responder *Responder, store ConversationStore) *ChatService {
	return &ChatService{
		responder: responder,
		store:     store,
		now:       time.Now,
	}
}

// Start creates a conversation holding only the greeting.
func (s *ChatService) Start() (Conversation, error) {
	now := s.now().UTC()
	conv := Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Messages: []Message{
			{Role: RoleAssistant, Content: Greeting, CreatedAt: now},
		},
	}
	if err := s.store.Create(conv); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

// Get returns a conversation by ID.
func (s *ChatService) Get(id string) (Conversation, error) {
	return s.store.Get(id)
}

// Send answers text in the context of the conversation and appends both the
// user message and the reply.
func (s *ChatService) Send(ctx context.Context, conversationID, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}

	conv, err := s.store.Get(conversationID)
	if err != nil {
		return Reply{}, err
	}

	asked := s.now().UTC()
	reply := s.responder.Respond(ctx, text, conv.Messages)

	_, err = s.store.Append(conversationID,
		Message{Role: RoleUser, Content: text, CreatedAt: asked},
		Message{Role: RoleAssistant, Content: reply.Content, CreatedAt: s.now().UTC()},
	)
	if err != nil {
		return Reply{}, err
	}
	return reply, nil
}
