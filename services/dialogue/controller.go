package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "wingman/database/repository/reservation"
	"wingman/models"
	"wingman/services/intelligence"
	"wingman/services/travel"
	"wingman/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	searchCallTimeout = 30 * time.Second
	ledgerCallTimeout = 10 * time.Second

	// Room-detail summaries cached for the yes/no follow-up.
	maxPendingRooms = 5
)

const (
	msgFlightChecklist = "Pour chercher un vol, il me faut la ville de départ, la ville d'arrivée et la date de départ (AAAA-MM-JJ)."
	msgHotelChecklist  = "Pour chercher un hôtel, précisez la ville ainsi que les dates d'arrivée et de départ (AAAA-MM-JJ)."
	msgSearchFirst     = "Quel vol souhaitez-vous réserver ? Lancez d'abord une recherche de vols."
	msgProviderDown    = "Le service de recherche est indisponible pour le moment. Réessayez dans quelques instants."
	msgAdviceDown      = "Désolé, je ne peux pas répondre pour le moment."
	msgStoreDown       = "Je rencontre un problème technique. Réessayez dans quelques instants."
	msgRoomPrompt      = "Souhaitez-vous voir le détail des chambres ? (oui/non)"
	msgRoomsDiscarded  = "Très bien, je n'affiche pas les détails des chambres."
)

// DefaultChatService is the dialogue controller: it resolves the intent of
// each turn, drives the session state machine and converts every
// collaborator outcome into a reply.
type DefaultChatService struct {
	Resolver   intelligence.IntentResolver
	Advisor    intelligence.Advisor
	Normalizer *Normalizer
	Flights    travel.FlightSearcher
	Hotels     travel.HotelSearcher
	Ledger     reservationRepo.Ledger
	Sessions   SessionStore
}

// HandleTurn processes one utterance for the given session key, minting a
// fresh key when none is supplied.
func (s *DefaultChatService) HandleTurn(ctx context.Context, utterance, sessionKey string) *models.ChatReply {
	if strings.TrimSpace(sessionKey) == "" {
		sessionKey = uuid.New().String()
	}

	reply := &models.ChatReply{
		SessionKey: sessionKey,
		Flights:    []models.FlightOffer{},
		Hotels:     []models.HotelOffer{},
	}

	err := s.Sessions.Update(ctx, sessionKey, func(sess *models.Session) error {
		s.runTurn(ctx, utterance, sess, reply)
		return nil
	})
	if err != nil {
		utils.GetLogger().Error("session store failure",
			zap.String("session", sessionKey), zap.Error(err))
		reply.Answer = msgStoreDown
	}
	return reply
}

func (s *DefaultChatService) runTurn(ctx context.Context, utterance string, sess *models.Session, reply *models.ChatReply) {
	// A pending room-details question takes priority over fresh intent
	// resolution: the user owes a yes/no first.
	if sess.State == models.StateAwaitingRoomDetails {
		s.answerRoomFollowUp(utterance, sess, reply)
		return
	}

	res := s.Resolver.Resolve(ctx, utterance)

	switch res.Intent {
	case intelligence.IntentAdvice:
		s.handleAdvice(ctx, utterance, reply)
	case intelligence.IntentHotel:
		s.handleHotelSearch(ctx, utterance, sess, reply)
	case intelligence.IntentBook:
		s.handleBooking(ctx, res, sess, reply)
	default:
		// search and unknown both take the flight-search path.
		s.handleFlightSearch(ctx, utterance, res, sess, reply)
	}
}

// answerRoomFollowUp interprets the turn as a yes/no on showing the cached
// room details. Anything else repeats the prompt without changing state.
func (s *DefaultChatService) answerRoomFollowUp(utterance string, sess *models.Session, reply *models.ChatReply) {
	switch {
	case hasAnyPrefix(utterance, "oui", "yes", "ok"):
		reply.Answer = renderRooms(sess.PendingRooms)
		sess.PendingRooms = nil
		sess.State = models.StateIdle
	case hasAnyPrefix(utterance, "non", "no"):
		reply.Answer = msgRoomsDiscarded
		sess.PendingRooms = nil
		sess.State = models.StateIdle
	default:
		reply.Answer = msgRoomPrompt
	}
}

func (s *DefaultChatService) handleAdvice(ctx context.Context, utterance string, reply *models.ChatReply) {
	answer, err := s.Advisor.Suggest(ctx, utterance)
	if err != nil || strings.TrimSpace(answer) == "" {
		utils.GetLogger().Warn("advisor unavailable", zap.Error(err))
		reply.Answer = msgAdviceDown
		return
	}
	reply.Answer = answer
}

func (s *DefaultChatService) handleFlightSearch(ctx context.Context, utterance string, res intelligence.Resolution, sess *models.Session, reply *models.ChatReply) {
	logger := utils.GetLogger()

	q, err := s.Normalizer.FlightQuery(ctx, utterance, res.Flight)
	if err != nil {
		var incomplete *IncompleteQueryError
		if errors.As(err, &incomplete) {
			reply.Answer = msgFlightChecklist
		} else {
			logger.Warn("flight extraction unavailable", zap.Error(err))
			reply.Answer = msgProviderDown
		}
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, searchCallTimeout)
	defer cancel()
	raw, err := s.Flights.SearchFlights(callCtx, q)
	if err != nil {
		logger.Warn("flight search failed", zap.String("origin", q.Origin),
			zap.String("destination", q.Destination), zap.Error(err))
		reply.Answer = msgProviderDown
		return
	}

	flights := FormatFlights(raw)
	if len(flights) == 0 {
		reply.Answer = fmt.Sprintf("Aucun vol trouvé pour %s → %s le %s.", q.Origin, q.Destination, q.DepartureDate)
		return
	}

	sess.LastFlights = flights
	sess.LastQuery = &q
	sess.PendingRooms = nil
	sess.State = models.StateAwaitingReservation

	reply.Flights = flights
	reply.Answer = renderFlights(flights, q)
}

func (s *DefaultChatService) handleHotelSearch(ctx context.Context, utterance string, sess *models.Session, reply *models.ChatReply) {
	logger := utils.GetLogger()

	q, err := s.Normalizer.HotelQuery(ctx, utterance)
	if err != nil {
		var incomplete *IncompleteQueryError
		if errors.As(err, &incomplete) {
			reply.Answer = msgHotelChecklist
		} else {
			logger.Warn("hotel extraction unavailable", zap.Error(err))
			reply.Answer = msgProviderDown
		}
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, searchCallTimeout)
	defer cancel()
	raw, err := s.Hotels.SearchHotels(callCtx, q)
	if err != nil {
		logger.Warn("hotel search failed", zap.String("city", q.CityName), zap.Error(err))
		reply.Answer = msgProviderDown
		return
	}

	hotels := FormatHotels(raw)
	if len(hotels) == 0 {
		reply.Answer = fmt.Sprintf("Aucun hôtel trouvé à %s du %s au %s.", q.CityName, q.CheckIn, q.CheckOut)
		sess.PendingRooms = nil
		sess.State = models.StateIdle
		return
	}

	reply.Hotels = hotels
	answer := fmt.Sprintf("J'ai trouvé %d hôtels à %s du %s au %s, du moins cher au plus cher.",
		len(hotels), q.CityName, q.CheckIn, q.CheckOut)

	rooms := pendingRooms(hotels)
	if len(rooms) > 0 {
		sess.PendingRooms = rooms
		sess.State = models.StateAwaitingRoomDetails
		answer += " " + msgRoomPrompt
	} else {
		sess.PendingRooms = nil
		sess.State = models.StateIdle
	}
	reply.Answer = answer
}

func (s *DefaultChatService) handleBooking(ctx context.Context, res intelligence.Resolution, sess *models.Session, reply *models.ChatReply) {
	if len(sess.LastFlights) == 0 {
		reply.Answer = msgSearchFirst
		return
	}

	// 1-based selection from the extractor, clamped into range.
	idx := res.FlightIndex
	if idx < 1 {
		idx = 1
	}
	if idx > len(sess.LastFlights) {
		idx = len(sess.LastFlights)
	}
	offer := sess.LastFlights[idx-1]

	partySize := 1
	if sess.LastQuery != nil && sess.LastQuery.Adults > 0 {
		partySize = sess.LastQuery.Adults
	}
	lastName := strings.TrimSpace(res.TravelerLastName)
	if lastName == "" {
		lastName = "Voyageur"
	}

	reservation := models.Reservation{
		ID:                 uuid.New().String()[:8],
		TravelerLastName:   lastName,
		TravelerFirstName:  strings.TrimSpace(res.TravelerFirstName),
		Origin:             offer.Departure.Iata,
		Destination:        offer.Arrival.Iata,
		DepartureTimestamp: offer.Departure.At,
		ArrivalTimestamp:   offer.Arrival.At,
		PartySize:          partySize,
		PriceLabel:         offer.Price + " " + offer.Currency,
	}

	callCtx, cancel := context.WithTimeout(ctx, ledgerCallTimeout)
	defer cancel()
	if err := s.Ledger.Append(callCtx, reservation); err != nil {
		utils.GetLogger().Error("reservation ledger write failed",
			zap.String("reservation", reservation.ID), zap.Error(err))
		reply.Answer = fmt.Sprintf(
			"La réservation n'a pas pu être enregistrée (%v). Vos résultats sont conservés, vous pouvez réessayer.", err)
		return
	}

	sess.Reset()
	reply.Reserved = true
	reply.Answer = fmt.Sprintf("C'est fait ! Réservation %s confirmée pour le vol %s → %s du %s.",
		reservation.ID, reservation.Origin, reservation.Destination, reservation.DepartureTimestamp)
}

// pendingRooms keeps up to maxPendingRooms summaries of hotels that carry
// room metadata.
func pendingRooms(hotels []models.HotelOffer) []models.RoomSummary {
	var rooms []models.RoomSummary
	for _, h := range hotels {
		if h.RoomDetails == nil {
			continue
		}
		rooms = append(rooms, models.RoomSummary{HotelName: h.Name, Details: *h.RoomDetails})
		if len(rooms) == maxPendingRooms {
			break
		}
	}
	return rooms
}

func hasAnyPrefix(utterance string, prefixes ...string) bool {
	t := strings.ToLower(strings.TrimSpace(utterance))
	for _, p := range prefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

func renderFlights(flights []models.FlightOffer, q models.FlightQuery) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "J'ai trouvé %d vols vers %s le %s à partir de %s %s.\n",
		len(flights), q.Destination, q.DepartureDate, flights[0].Price, flights[0].Currency)
	for i, f := range flights {
		fmt.Fprintf(&sb, "%d. %s %s → %s, départ %s, %s %s",
			i+1, f.Airline, f.Departure.Iata, f.Arrival.Iata, f.Departure.At, f.Price, f.Currency)
		if f.Stops > 0 {
			fmt.Fprintf(&sb, " (%d escale(s))", f.Stops)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Dites « réserver le vol N » pour réserver.")
	return sb.String()
}

func renderRooms(rooms []models.RoomSummary) string {
	var sb strings.Builder
	sb.WriteString("Voici le détail des chambres :\n")
	for _, r := range rooms {
		sb.WriteString("- " + r.HotelName + " :")
		d := r.Details
		if d.Category != "" {
			sb.WriteString(" " + strings.ToLower(strings.ReplaceAll(d.Category, "_", " ")))
		}
		if d.Beds > 0 {
			fmt.Fprintf(&sb, ", %d lit(s)", d.Beds)
			if d.BedType != "" {
				sb.WriteString(" " + strings.ToLower(d.BedType))
			}
		}
		if d.BoardType != "" {
			sb.WriteString(", pension " + strings.ToLower(strings.ReplaceAll(d.BoardType, "_", " ")))
		}
		if d.CancellationPolicy != "" {
			sb.WriteString(", annulation " + strings.ToLower(strings.ReplaceAll(d.CancellationPolicy, "_", " ")))
		}
		if d.PaymentType != "" {
			sb.WriteString(", paiement " + strings.ToLower(d.PaymentType))
		}
		if d.Description != "" {
			sb.WriteString(" — " + d.Description)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
