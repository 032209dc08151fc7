package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wingman/models"
	"wingman/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedResolver replays one resolution per turn.
type scriptedResolver struct {
	script []intelligence.Resolution
}

func (r *scriptedResolver) Resolve(ctx context.Context, utterance string) intelligence.Resolution {
	if len(r.script) == 0 {
		return intelligence.Resolution{Intent: intelligence.IntentSearch}
	}
	res := r.script[0]
	r.script = r.script[1:]
	return res
}

type fakeAdvisor struct {
	answer string
	err    error
}

func (a *fakeAdvisor) Suggest(ctx context.Context, utterance string) (string, error) {
	return a.answer, a.err
}

type fakeFlightSearcher struct {
	calls int
	raw   []models.RawFlightOffer
	err   error
}

func (f *fakeFlightSearcher) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.RawFlightOffer, error) {
	f.calls++
	return f.raw, f.err
}

type fakeHotelSearcher struct {
	calls int
	raw   []models.RawHotelEntry
	err   error
}

func (f *fakeHotelSearcher) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.RawHotelEntry, error) {
	f.calls++
	return f.raw, f.err
}

type fakeLedger struct {
	calls int
	last  models.Reservation
	err   error
}

func (f *fakeLedger) Append(ctx context.Context, res models.Reservation) error {
	f.calls++
	f.last = res
	return f.err
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return nil, errors.New("not found")
}

func (f *fakeLedger) List(ctx context.Context) ([]models.Reservation, error) {
	return nil, nil
}

type chatFixture struct {
	service  *DefaultChatService
	resolver *scriptedResolver
	advisor  *fakeAdvisor
	flights  *fakeFlightSearcher
	hotels   *fakeHotelSearcher
	ledger   *fakeLedger
	ext      *countingExtractor
	store    *MemorySessionStore
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		resolver: &scriptedResolver{},
		advisor:  &fakeAdvisor{},
		flights:  &fakeFlightSearcher{},
		hotels:   &fakeHotelSearcher{},
		ledger:   &fakeLedger{},
		ext:      &countingExtractor{},
		store:    NewMemorySessionStore(),
	}
	f.service = &DefaultChatService{
		Resolver:   f.resolver,
		Advisor:    f.advisor,
		Normalizer: &Normalizer{Extractor: f.ext},
		Flights:    f.flights,
		Hotels:     f.hotels,
		Ledger:     f.ledger,
		Sessions:   f.store,
	}
	return f
}

func (f *chatFixture) snapshot(t *testing.T, key string) models.Session {
	t.Helper()
	var out models.Session
	require.NoError(t, f.store.Update(context.Background(), key, func(sess *models.Session) error {
		out = *sess
		return nil
	}))
	return out
}

func searchResolution() intelligence.Resolution {
	return intelligence.Resolution{
		Intent:    intelligence.IntentSearch,
		Flight:    intelligence.FlightFields{Origin: "TLS", Destination: "CDG", DepartureDate: "2026-02-10"},
		FromModel: true,
	}
}

func TestSearchTurnRanksFlightsAndAwaitsReservation(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{searchResolution()}
	f.flights.raw = []models.RawFlightOffer{
		rawFlight("1", "120.00", 1),
		rawFlight("2", "85.00", 1),
	}

	reply := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "")
	require.NotEmpty(t, reply.SessionKey)
	require.Len(t, reply.Flights, 2)
	assert.Equal(t, "85.00", reply.Flights[0].Price)
	assert.Equal(t, "120.00", reply.Flights[1].Price)
	assert.Contains(t, reply.Answer, "2 vols")
	assert.Contains(t, reply.Answer, "CDG")

	sess := f.snapshot(t, reply.SessionKey)
	assert.Equal(t, models.StateAwaitingReservation, sess.State)
	require.Len(t, sess.LastFlights, 2)
	require.NotNil(t, sess.LastQuery)
	assert.Equal(t, "TLS", sess.LastQuery.Origin)
}

func TestBookingTurnAfterSearch(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		searchResolution(),
		{Intent: intelligence.IntentBook, FlightIndex: 1, FromModel: true},
	}
	f.flights.raw = []models.RawFlightOffer{
		rawFlight("1", "120.00", 1),
		rawFlight("2", "85.00", 1),
	}

	first := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "")
	key := first.SessionKey

	reply := f.service.HandleTurn(context.Background(), "je réserve le vol 1", key)
	assert.True(t, reply.Reserved)
	assert.Contains(t, reply.Answer, "confirmée")
	assert.Equal(t, 1, f.ledger.calls)
	assert.Equal(t, "85.00 EUR", f.ledger.last.PriceLabel)
	assert.Equal(t, "TLS", f.ledger.last.Origin)
	assert.Equal(t, "CDG", f.ledger.last.Destination)
	assert.Equal(t, 1, f.ledger.last.PartySize)

	sess := f.snapshot(t, key)
	assert.Equal(t, models.StateIdle, sess.State)
	assert.Empty(t, sess.LastFlights)
	assert.Nil(t, sess.LastQuery)
}

func TestBookingClampsOutOfRangeIndex(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		searchResolution(),
		{Intent: intelligence.IntentBook, FlightIndex: 99, FromModel: true},
	}
	f.flights.raw = []models.RawFlightOffer{
		rawFlight("1", "120.00", 1),
		rawFlight("2", "85.00", 1),
	}

	first := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "")
	reply := f.service.HandleTurn(context.Background(), "je réserve le vol 99", first.SessionKey)

	assert.True(t, reply.Reserved)
	assert.Equal(t, "120.00 EUR", f.ledger.last.PriceLabel)
}

func TestBookingWithoutSearchFirst(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentBook, FlightIndex: 1, FromModel: true},
	}

	reply := f.service.HandleTurn(context.Background(), "je réserve le vol 1", "sess-1")
	assert.Equal(t, msgSearchFirst, reply.Answer)
	assert.False(t, reply.Reserved)
	assert.Zero(t, f.ledger.calls)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
}

func TestBookingLedgerFailureKeepsFlights(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		searchResolution(),
		{Intent: intelligence.IntentBook, FlightIndex: 1, FromModel: true},
	}
	f.flights.raw = []models.RawFlightOffer{rawFlight("1", "85.00", 1)}
	f.ledger.err = errors.New("ledger unreachable")

	first := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "")
	reply := f.service.HandleTurn(context.Background(), "je réserve le vol 1", first.SessionKey)

	assert.False(t, reply.Reserved)
	assert.Contains(t, reply.Answer, "réessayer")

	sess := f.snapshot(t, first.SessionKey)
	assert.Equal(t, models.StateAwaitingReservation, sess.State)
	assert.Len(t, sess.LastFlights, 1)
}

func TestSearchNoResultsDoesNotAwaitReservation(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{searchResolution()}

	reply := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "sess-1")
	assert.Contains(t, reply.Answer, "Aucun vol trouvé")
	assert.Empty(t, reply.Flights)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
}

func TestSearchProviderFailureLeavesStateUnchanged(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{searchResolution()}
	f.flights.err = errors.New("provider down")

	reply := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "sess-1")
	assert.Equal(t, msgProviderDown, reply.Answer)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
	assert.Empty(t, sess.LastFlights)
}

func TestSearchIncompleteQueryListsChecklist(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentSearch, FromModel: true},
	}
	f.ext.err = errors.New("model down")

	reply := f.service.HandleTurn(context.Background(), "je veux partir", "sess-1")
	assert.Equal(t, msgFlightChecklist, reply.Answer)
	assert.Zero(t, f.flights.calls)
}

func TestHotelTurnWithoutDatesShortCircuits(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentHotel, FromModel: true},
	}

	reply := f.service.HandleTurn(context.Background(), "hotel Toulouse", "sess-1")
	assert.Equal(t, msgHotelChecklist, reply.Answer)
	assert.Empty(t, reply.Hotels)
	assert.Zero(t, f.hotels.calls, "no search call for an underspecified hotel turn")
	assert.Zero(t, f.ext.hotelCalls, "no extraction call either")

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
}

func hotelEntryWithRoom(id, name string) models.RawHotelEntry {
	entry := rawHotel(id, name, "150.00")
	entry.Offers[0].Room = &models.RawRoom{
		TypeEstimated: &models.RawRoomTypeEstimated{Category: "STANDARD_ROOM", Beds: 2, BedType: "DOUBLE"},
	}
	return entry
}

func TestHotelTurnStashesRoomDetailsFollowUp(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentHotel, FromModel: true},
	}
	f.ext.hotel = intelligence.HotelFields{CityName: "Toulouse", CheckIn: "2026-03-01", CheckOut: "2026-03-05"}
	f.hotels.raw = []models.RawHotelEntry{
		hotelEntryWithRoom("h1", "Grand Hôtel"),
		rawHotel("h2", "Sans Détails", "90.00"),
	}

	reply := f.service.HandleTurn(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05", "sess-1")
	require.Len(t, reply.Hotels, 2)
	assert.Contains(t, reply.Answer, msgRoomPrompt)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateAwaitingRoomDetails, sess.State)
	require.Len(t, sess.PendingRooms, 1)
	assert.Equal(t, "Grand Hôtel", sess.PendingRooms[0].HotelName)
}

func TestRoomFollowUpYesRendersAndClears(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentHotel, FromModel: true},
	}
	f.ext.hotel = intelligence.HotelFields{CityName: "Toulouse", CheckIn: "2026-03-01", CheckOut: "2026-03-05"}
	f.hotels.raw = []models.RawHotelEntry{hotelEntryWithRoom("h1", "Grand Hôtel")}

	f.service.HandleTurn(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05", "sess-1")
	reply := f.service.HandleTurn(context.Background(), "Oui, volontiers", "sess-1")

	assert.Contains(t, reply.Answer, "Grand Hôtel")

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
	assert.Empty(t, sess.PendingRooms)
}

func TestRoomFollowUpNoDiscards(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentHotel, FromModel: true},
	}
	f.ext.hotel = intelligence.HotelFields{CityName: "Toulouse", CheckIn: "2026-03-01", CheckOut: "2026-03-05"}
	f.hotels.raw = []models.RawHotelEntry{hotelEntryWithRoom("h1", "Grand Hôtel")}

	f.service.HandleTurn(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05", "sess-1")
	reply := f.service.HandleTurn(context.Background(), "non merci", "sess-1")

	assert.Equal(t, msgRoomsDiscarded, reply.Answer)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
	assert.Empty(t, sess.PendingRooms)
}

func TestRoomFollowUpUnrelatedRepromptsWithoutResolving(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentHotel, FromModel: true},
		// No second entry: a resolver call on the follow-up turn would
		// fall through to the default search resolution and fail the
		// assertions below.
	}
	f.ext.hotel = intelligence.HotelFields{CityName: "Toulouse", CheckIn: "2026-03-01", CheckOut: "2026-03-05"}
	f.hotels.raw = []models.RawHotelEntry{hotelEntryWithRoom("h1", "Grand Hôtel")}

	f.service.HandleTurn(context.Background(), "hotel Toulouse du 2026-03-01 au 2026-03-05", "sess-1")
	reply := f.service.HandleTurn(context.Background(), "vol TLS CDG 2026-02-10", "sess-1")

	assert.Equal(t, msgRoomPrompt, reply.Answer)
	assert.Zero(t, f.flights.calls)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateAwaitingRoomDetails, sess.State)
	assert.Len(t, sess.PendingRooms, 1)
}

func TestAdviceTurnBypassesSession(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentAdvice, FromModel: true},
	}
	f.advisor.answer = "Visitez la place du Capitole."

	reply := f.service.HandleTurn(context.Background(), "que faire à Toulouse ?", "sess-1")
	assert.Equal(t, "Visitez la place du Capitole.", reply.Answer)
	assert.Empty(t, reply.Flights)
	assert.Empty(t, reply.Hotels)

	sess := f.snapshot(t, "sess-1")
	assert.Equal(t, models.StateIdle, sess.State)
}

func TestAdviceUnavailableDegrades(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentAdvice, FromModel: true},
	}
	f.advisor.err = errors.New("model down")

	reply := f.service.HandleTurn(context.Background(), "des conseils ?", "sess-1")
	assert.Equal(t, msgAdviceDown, reply.Answer)
}

func TestHandleTurnMintsSessionKey(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentAdvice, FromModel: true},
	}
	f.advisor.answer = "Bonjour !"

	reply := f.service.HandleTurn(context.Background(), "salut", "")
	assert.NotEmpty(t, reply.SessionKey)

	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentAdvice, FromModel: true},
	}
	echo := f.service.HandleTurn(context.Background(), "salut", "  my-key  ")
	assert.NotEqual(t, "", strings.TrimSpace(echo.SessionKey))
}

func TestAnswerIsNeverEmpty(t *testing.T) {
	f := newChatFixture()
	f.resolver.script = []intelligence.Resolution{
		{Intent: intelligence.IntentUnknown, FromModel: true},
	}
	f.ext.err = errors.New("model down")

	reply := f.service.HandleTurn(context.Background(), "???", "sess-1")
	assert.NotEmpty(t, reply.Answer)
}
