package models

// DialogueState is the per-session position in the conversation flow.
type DialogueState string

const (
	StateIdle                DialogueState = "idle"
	StateAwaitingReservation DialogueState = "awaiting_reservation"
	StateAwaitingRoomDetails DialogueState = "awaiting_room_details"
)

// Session is the mutable per-conversation state, keyed by an opaque
// session token. Created lazily on first use; reset to idle/empty when a
// booking completes.
//
// Invariants: StateAwaitingReservation implies LastFlights is non-empty,
// StateAwaitingRoomDetails implies PendingRooms is non-empty.
type Session struct {
	State        DialogueState `json:"state"`
	LastFlights  []FlightOffer `json:"lastFlights,omitempty"`
	LastQuery    *FlightQuery  `json:"lastQuery,omitempty"`
	PendingRooms []RoomSummary `json:"pendingRooms,omitempty"`
}

// NewSession returns an empty idle session.
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Reset clears everything back to an idle session.
func (s *Session) Reset() {
	s.State = StateIdle
	s.LastFlights = nil
	s.LastQuery = nil
	s.PendingRooms = nil
}
