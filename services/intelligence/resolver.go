package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wingman/utils"

	"go.uber.org/zap"
)

const (
	classifySystem = "Tu es un assistant de voyage. Tu réponds UNIQUEMENT en JSON valide."
	extractSystem  = "Tu es un extracteur de données strict. Tu réponds UNIQUEMENT en JSON à plat."

	modelCallTimeout = 15 * time.Second
)

// DefaultResolver classifies utterances and extracts query fields through
// a single language model, with a lexical fallback when the model is
// unavailable or returns garbage.
type DefaultResolver struct {
	Gen ContentGenerator
}

func NewDefaultResolver(gen ContentGenerator) *DefaultResolver {
	return &DefaultResolver{Gen: gen}
}

// currentDateLine anchors relative dates ("demain", "samedi prochain") for
// the model.
func currentDateLine() string {
	return fmt.Sprintf("Aujourd'hui nous sommes le %s.", time.Now().Format("2006-01-02"))
}

// modelResolution is the flat JSON shape the classification prompt asks for.
type modelResolution struct {
	Intent string `json:"intent"`
	FlightFields
	FlightIndex       int    `json:"flightIndex"`
	TravelerFirstName string `json:"travelerFirstName"`
	TravelerLastName  string `json:"travelerLastName"`
}

// Resolve classifies the utterance into search/book/hotel/advice and pulls
// flight fields in the same model pass. Model failures never propagate:
// they degrade to the keyword fallback.
func (r *DefaultResolver) Resolve(ctx context.Context, utterance string) Resolution {
	logger := utils.GetLogger()

	prompt := currentDateLine() + "\n" +
		"Analyse le message de l'utilisateur et détermine son intention.\n\n" +
		"CONSIGNES JSON STRICTES :\n" +
		"1) Ajoute une clé 'intent' qui vaut 'search' (recherche de vol), 'book' (réservation d'un vol déjà trouvé), " +
		"'hotel' (recherche d'hôtel) ou 'advice' (conseils, idées de visites, conversation).\n" +
		"2) Si intent == 'search' : réponds en JSON à plat avec UNIQUEMENT ces clés :\n" +
		"   intent, originLocationCode, destinationLocationCode, departureDate, adults.\n" +
		"   - originLocationCode / destinationLocationCode : codes IATA (3 lettres majuscules)\n" +
		"   - departureDate : YYYY-MM-DD\n" +
		"   - adults : nombre (1 par défaut)\n" +
		"3) Si intent == 'book' : réponds avec UNIQUEMENT : intent, flightIndex (numéro du vol, 1 par défaut), " +
		"travelerFirstName, travelerLastName (si mentionnés).\n" +
		"4) Si intent == 'hotel' ou 'advice' : réponds avec UNIQUEMENT : intent.\n" +
		"Phrase : " + utterance

	callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	raw, err := r.Gen.GenerateJSON(callCtx, classifySystem, prompt)
	if err != nil {
		logger.Warn("intent model unavailable, using keyword fallback", zap.Error(err))
		return lexicalFallback(utterance)
	}

	var mr modelResolution
	if err := json.Unmarshal([]byte(sanitizeJSON(raw)), &mr); err != nil {
		logger.Warn("intent model returned invalid JSON, using keyword fallback", zap.Error(err))
		return lexicalFallback(utterance)
	}

	res := Resolution{
		Flight:            mr.FlightFields,
		FlightIndex:       mr.FlightIndex,
		TravelerFirstName: mr.TravelerFirstName,
		TravelerLastName:  mr.TravelerLastName,
		FromModel:         true,
	}
	switch mr.Intent {
	case "search":
		res.Intent = IntentSearch
	case "book":
		res.Intent = IntentBook
	case "hotel":
		res.Intent = IntentHotel
	case "advice":
		res.Intent = IntentAdvice
	default:
		res.Intent = IntentUnknown
	}
	return res
}

// lexicalFallback is the deterministic classifier used when the model path
// fails: a hotel keyword forces hotel, everything else defaults to search.
func lexicalFallback(utterance string) Resolution {
	lower := strings.ToLower(utterance)
	if strings.Contains(lower, "hotel") || strings.Contains(lower, "hôtel") {
		return Resolution{Intent: IntentHotel}
	}
	return Resolution{Intent: IntentSearch}
}

// ExtractFlight runs the dedicated flight-field extraction prompt.
func (r *DefaultResolver) ExtractFlight(ctx context.Context, utterance string) (FlightFields, error) {
	prompt := currentDateLine() + "\n" +
		"Tu extrais des informations de vol.\n" +
		"Réponds UNIQUEMENT en JSON à plat avec ces clés :\n" +
		"originLocationCode, destinationLocationCode, departureDate, adults.\n" +
		"origin/destination = codes IATA (ex: TLS, CDG).\n" +
		"departureDate = YYYY-MM-DD.\n" +
		"adults = nombre (1 par défaut).\n\n" +
		"Phrase : " + utterance

	callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	raw, err := r.Gen.GenerateJSON(callCtx, extractSystem, prompt)
	if err != nil {
		return FlightFields{}, err
	}

	var fields FlightFields
	if err := json.Unmarshal([]byte(sanitizeJSON(raw)), &fields); err != nil {
		return FlightFields{}, fmt.Errorf("flight extraction returned invalid JSON: %w", err)
	}
	return fields, nil
}

// ExtractHotel runs the dedicated hotel-field extraction prompt.
func (r *DefaultResolver) ExtractHotel(ctx context.Context, utterance string) (HotelFields, error) {
	prompt := currentDateLine() + "\n" +
		"Tu extrais des informations d'hôtel.\n" +
		"Réponds UNIQUEMENT en JSON à plat avec ces clés :\n" +
		"city_name, checkin, checkout, adults, rooms.\n" +
		"Dates = YYYY-MM-DD.\n" +
		"ATTENTION : si checkin/checkout ne sont pas présents dans la phrase, mets null.\n" +
		"adults = 2 par défaut, rooms = 1 par défaut.\n\n" +
		"Phrase : " + utterance

	callCtx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	raw, err := r.Gen.GenerateJSON(callCtx, extractSystem, prompt)
	if err != nil {
		return HotelFields{}, err
	}

	var fields HotelFields
	if err := json.Unmarshal([]byte(sanitizeJSON(raw)), &fields); err != nil {
		return HotelFields{}, fmt.Errorf("hotel extraction returned invalid JSON: %w", err)
	}
	return fields, nil
}

// sanitizeJSON strips the markdown fences some models wrap JSON answers in.
func sanitizeJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
