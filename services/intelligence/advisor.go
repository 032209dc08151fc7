package intelligence

import (
	"context"
)

const advisorPrompt = "Tu es Wingman, un guide de voyage expert. L'utilisateur te demande des conseils, " +
	"des idées de visites, des suggestions d'activités, ou veut simplement discuter. " +
	"S'il demande des conseils ou des idées, réponds de manière chaleureuse en français " +
	"avec 3-4 suggestions précises. Sinon, donne une réponse courte.\n\n"

// Suggest answers an advice turn with a free-text model reply. The caller
// returns the answer verbatim and performs no session mutation.
func (r *DefaultResolver) Suggest(ctx context.Context, utterance string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	return r.Gen.GenerateContent(callCtx, advisorPrompt+"Message : "+utterance)
}
