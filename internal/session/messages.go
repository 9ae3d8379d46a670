package session

import "github.com/rocketscienceinc/tictactoe-arena/internal/entity"

const (
	actionJoinQueue  = "join_queue"
	actionLeaveQueue = "leave_queue"
	actionPlay       = "play"
	actionResync     = "re_sync"
)

const (
	messageTypeSync        = "sync"
	messageTypeQueue       = "queue"
	messageTypePlayerCount = "public_player_count"
)

// inboundMessage is the union of every client intent. Slot is a pointer so
// an absent slot can be told apart from slot 0.
type inboundMessage struct {
	Type   string `json:"type"`
	Queue  string `json:"queue,omitempty"`
	GameID string `json:"gameId,omitempty"`
	Slot   *int   `json:"slot,omitempty"`
}

// SyncMessage carries the authoritative game view. A nil state tells the
// client it has no active game.
type SyncMessage struct {
	Type  string        `json:"type"`
	State *entity.State `json:"state"`
}

// QueueAckMessage acknowledges a queue join or creation request. GameID is
// nil on rejection.
type QueueAckMessage struct {
	Type    string  `json:"type"`
	Success bool    `json:"success"`
	GameID  *string `json:"gameId"`
}

// PlayerCountMessage reports how many players occupy public games.
type PlayerCountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}
