package models

import "time"

// ThreadKind classifies a conversation
type ThreadKind string

const (
	ThreadKindDirect    ThreadKind = "direct"
	ThreadKindGroup     ThreadKind = "group"
	ThreadKindCommunity ThreadKind = "community"
)

// MessageThread is the metadata of a conversation
type MessageThread struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Kind         ThreadKind `json:"kind"`
	CommunityID  string     `json:"communityId"`
	AreaID       string     `json:"areaId,omitempty"`
	Participants []string   `json:"participants"`
	Preview      string     `json:"preview,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Message is one entry in a thread, in send order
type Message struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"threadId"`
	Author   string    `json:"author"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// StoredThread is a thread together with its locally persisted messages
type StoredThread struct {
	MessageThread
	Messages []Message `json:"messages"`
}
