package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message    string `json:"message" binding:"required"`
	SessionKey string `json:"session_id"`
}

// ChatReply is what the dialogue controller returns for one turn.
// Answer is always non-empty; Flights and Hotels are empty slices rather
// than nil so the frontend can iterate without guards.
type ChatReply struct {
	SessionKey string        `json:"session_id"`
	Answer     string        `json:"answer"`
	Flights    []FlightOffer `json:"flights"`
	Hotels     []HotelOffer  `json:"hotels"`
	Reserved   bool          `json:"reserved,omitempty"`
}
