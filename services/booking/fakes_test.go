package booking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"concierge/models"

	"github.com/hibiken/asynq"
)

// countingCapability wraps the real capability check and counts calls.
type countingCapability struct {
	calls atomic.Int32
}

func (c *countingCapability) Supports(v models.Venue, cat models.Category) bool {
	c.calls.Add(1)
	return TransactionCapability{}.Supports(v, cat)
}

type fakeExecutor struct {
	mu        sync.Mutex
	calls     int
	err       error
	panicWith any
}

func (f *fakeExecutor) Execute(_ context.Context, _ models.Venue, req models.BookingRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return "", f.err
	}
	return NewConfirmationID(req.Category), nil
}

func (f *fakeExecutor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeReservations struct {
	unavailable  bool
	alternatives []string
	checkErr     error
	reserveErr   error
	checks       int
}

func (f *fakeReservations) CheckTime(context.Context, models.Venue, string, string, int) (bool, []string, error) {
	f.checks++
	if f.checkErr != nil {
		return false, nil, f.checkErr
	}
	if f.unavailable {
		return false, f.alternatives, nil
	}
	return true, nil, nil
}

func (f *fakeReservations) Reserve(context.Context, models.Venue, models.BookingRequest) (string, error) {
	if f.reserveErr != nil {
		return "", f.reserveErr
	}
	return "DIN-TEST0001", nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) BookingConfirmed(context.Context, models.BookingRequest, models.BookingResult) error {
	f.calls++
	return f.err
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

// constSource makes math/rand return the same value forever.
type constSource int64

func (s constSource) Int63() int64 { return int64(s) }
func (constSource) Seed(int64)     {}

const (
	// alwaysLow yields Float64() == 0, below every probability.
	alwaysLow constSource = 0
	// alwaysHigh yields Float64() == 0.96875, above every probability used here.
	alwaysHigh constSource = 1<<63 - 1<<58
)

func restaurant() models.Venue {
	return models.Venue{
		ID:           "v-din",
		Name:         "Trattoria Roma",
		Rating:       4.5,
		Price:        2,
		Categories:   []string{"dining", "italian"},
		Transactions: []string{models.TxRestaurantReservation},
		Contact:      models.ContactInfo{Phone: "+1 415-555-0123", URL: "https://trattoria.example"},
	}
}

func hotel(id string, rating float64, online bool) models.Venue {
	v := models.Venue{
		ID:         id,
		Name:       "Hotel " + id,
		Rating:     rating,
		Price:      3,
		Categories: []string{"accommodation", "hotels"},
		Contact:    models.ContactInfo{Phone: "4155550199"},
	}
	if online {
		v.Transactions = []string{models.TxHotelReservation}
	}
	return v
}

func withTx(v models.Venue, tx string) models.Venue {
	v.Transactions = append(v.Transactions, tx)
	return v
}

func contact() models.ContactDetails {
	return models.ContactDetails{Name: "Ada Lovelace", Email: "ada@example.com"}
}

// validRequest returns a complete request for the category against a venue that supports it.
func validRequest(c models.Category) models.BookingRequest {
	req := models.BookingRequest{
		Category:  c,
		Contact:   contact(),
		Date:      "2030-05-01",
		PartySize: 2,
	}
	var v models.Venue
	switch c {
	case models.CategoryDining:
		v = restaurant()
		req.Details = &models.DiningDetails{PreferredTime: "19:00"}
	case models.CategoryAccommodation:
		v = hotel("h1", 4.2, true)
		req.Details = &models.AccommodationDetails{CheckIn: "2030-05-01", CheckOut: "2030-05-04", Rooms: 2}
	case models.CategoryAttraction:
		v = withTx(models.Venue{ID: "a1", Name: "City Museum", Price: 2, Categories: []string{"attraction", "museums"}}, models.TxTicketSales)
		req.Details = &models.AttractionDetails{VisitTime: "10:00", TicketType: "adult", TicketCount: 3}
	case models.CategoryTransportation:
		v = withTx(models.Venue{ID: "t1", Name: "Bay Cabs", Categories: []string{"transportation", "taxis"}}, models.TxTransportBooking)
		req.Details = &models.TransportationDetails{DepartureTime: "08:00", ArrivalTime: "08:45", Mode: "taxi"}
	case models.CategoryEntertainment:
		v = withTx(models.Venue{ID: "e1", Name: "Jazz Lounge", Price: 1, Categories: []string{"entertainment", "jazzandblues"}}, models.TxEventTickets)
		req.Details = &models.EntertainmentDetails{PreferredTime: "21:00"}
	}
	if v.Contact.Phone == "" {
		v.Contact.Phone = "+1 (212) 555-0100"
	}
	req.Venue = &v
	return req
}

type harness struct {
	orch         *DefaultOrchestrator
	capability   *countingCapability
	executor     *fakeExecutor
	reservations *fakeReservations
	notifier     *fakeNotifier
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		capability:   &countingCapability{},
		executor:     &fakeExecutor{},
		reservations: &fakeReservations{},
		notifier:     &fakeNotifier{},
	}
	opts.Capability = h.capability
	opts.Executor = h.executor
	opts.Reservations = h.reservations
	opts.Notifier = h.notifier
	h.orch = NewOrchestrator(opts)
	return h
}
