package dialogue

import (
	"context"

	"wingman/models"
)

// ChatService handles one conversation turn. The reply is never nil and
// its answer is never empty: every failure of a collaborator degrades to
// a user-facing message.
type ChatService interface {
	HandleTurn(ctx context.Context, utterance, sessionKey string) *models.ChatReply
}
