package schema

// Message is one chat message within a conversation.
type Message struct {
	MessageID      int     `json:"message_id"`
	ConversationID int     `json:"conversation_id"`
	SenderID       int     `json:"sender_id"`
	Content        string  `json:"content"`
	IsRead         bool    `json:"is_read"`
	CreatedAt      string  `json:"created_at"`
	SenderUsername *string `json:"sender_username,omitempty"`
}

// MessagesResponse wraps GET /messages/conversations/{id}.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}

// Conversation is one thread between two users. UnreadCount tolerates both
// numeric and string encodings on the wire.
type Conversation struct {
	ConversationID    int      `json:"conversation_id"`
	UserOne           int      `json:"user_one"`
	UserTwo           int      `json:"user_two"`
	UpdatedAt         *string  `json:"updated_at,omitempty"`
	OtherUsername     *string  `json:"other_username,omitempty"`
	OtherUserID       *int     `json:"other_user_id,omitempty"`
	OtherProfileImage *string  `json:"other_profile_image,omitempty"`
	LastMessage       *string  `json:"last_message,omitempty"`
	LastMessageAt     *string  `json:"last_message_at,omitempty"`
	LastSenderID      *int     `json:"last_sender_id,omitempty"`
	UnreadCount       *FlexInt `json:"unread_count,omitempty"`
}

// UnreadCountResponse wraps GET /messages/unread-count.
type UnreadCountResponse struct {
	Count FlexInt `json:"count"`
}

// CheckDMResponse wraps GET /messages/check-dm/{userId}.
type CheckDMResponse struct {
	CanDM          bool    `json:"canDM"`
	ConversationID *int    `json:"conversationId,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// SendMessageRequest carries the body for POST /messages/conversations/{id}.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// CreateConversationRequest carries the body for POST /messages/conversations.
type CreateConversationRequest struct {
	RecipientID int `json:"recipient_id"`
}
