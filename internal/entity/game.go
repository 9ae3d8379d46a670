package entity

const (
	StatusQueue    = "queue"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

const (
	ReasonWin   = "win"
	ReasonDraw  = "draw"
	ReasonLeave = "leave"
	ReasonTime  = "time"
)

// Seat is a player's fixed index within a game, assigned at start.
type Seat int

const (
	SeatOne Seat = 0
	SeatTwo Seat = 1
)

// Other returns the opposing seat.
func (that Seat) Other() Seat {
	if that == SeatOne {
		return SeatTwo
	}
	return SeatOne
}

// Grid is the 3x3 board stored row-major. A nil cell is unoccupied;
// occupancy is monotonic and is never cleared once set.
type Grid [9]*Seat

// IsFull reports whether every cell is occupied.
func (that *Grid) IsFull() bool {
	for _, cell := range that {
		if cell == nil {
			return false
		}
	}
	return true
}

// Result is set exactly once, at the finished transition. Winner stays nil
// for draws.
type Result struct {
	Winner *Seat  `json:"winner"`
	Reason string `json:"reason,omitempty"`
}

// State is the authoritative game view pushed to a player on every change.
// PlayerID is the only per-recipient field.
type State struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Privacy       string `json:"privacy"`
	Grid          Grid   `json:"grid"`
	CurrentPlayer Seat   `json:"currentPlayer"`
	Results       Result `json:"results"`
	LastUpdate    int64  `json:"lastUpdate"`
	PlayerID      Seat   `json:"playerId"`
}
