// Package stub is an in-memory backend used by demo mode and tests. It answers
// the same NATS subjects the real platform does, so the client code path is
// identical either way.
package stub

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/gosimple/slug"
	"github.com/matchday-app/matchday/internal/backend"
	"github.com/matchday-app/matchday/internal/logger"
	"github.com/nats-io/nats.go"
	"github.com/rs/xid"
)

// DemoClubID is the only club the stub accepts events for. Creating against
// any other club id reproduces the backend's authorization rejection.
const DemoClubID = "demo-club"

var demoCatalog = []backend.SportType{
	{ID: "running", Name: "Running"},
	{ID: "cycling", Name: "Cycling"},
	{ID: "swimming", Name: "Swimming"},
	{ID: "football", Name: "Football"},
	{ID: "tennis", Name: "Tennis"},
	{ID: "climbing", Name: "Climbing"},
}

// Server holds the stub's state and subscriptions.
type Server struct {
	mu     sync.Mutex
	events map[string]backend.Event
	subs   []*nats.Subscription
}

// Start subscribes the stub to all backend subjects on the given connection.
func Start(nc *nats.Conn) (*Server, error) {
	s := &Server{events: make(map[string]backend.Event)}

	handlers := map[string]nats.MsgHandler{
		backend.SubjectSportCatalog: s.handleCatalog,
		backend.SubjectReverseGeo:   s.handleReverseGeo,
		backend.SubjectEventGet:     s.handleGet,
		backend.SubjectEventCreate:  s.handleCreate,
		backend.SubjectEventUpdate:  s.handleUpdate,
	}

	for subject, handler := range handlers {
		sub, err := nc.Subscribe(subject, handler)
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("subscribing %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	logger.Debug("Stub backend serving %d subjects", len(handlers))
	return s, nil
}

// Stop unsubscribes all handlers.
func (s *Server) Stop() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = nil
}

// Seed stores an event directly, for demo edit mode and tests.
func (s *Server) Seed(ev backend.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.ID] = ev
}

// Get returns a stored event, for test assertions.
func (s *Server) Get(id string) (backend.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	return ev, ok
}

func respond(msg *nats.Msg, result any) {
	payload, err := json.Marshal(result)
	if err != nil {
		respondErr(msg, "internal: encoding result")
		return
	}
	data, _ := json.Marshal(struct {
		Result json.RawMessage `json:"result"`
	}{payload})
	_ = msg.Respond(data)
}

func respondErr(msg *nats.Msg, format string, v ...any) {
	data, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{fmt.Sprintf(format, v...)})
	_ = msg.Respond(data)
}

func (s *Server) handleCatalog(msg *nats.Msg) {
	respond(msg, struct {
		Sports []backend.SportType `json:"sports"`
	}{demoCatalog})
}

func (s *Server) handleReverseGeo(msg *nats.Msg) {
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		respondErr(msg, "bad reverse-geocode request")
		return
	}
	respond(msg, struct {
		Address string `json:"address"`
	}{lookupAddress(req.Latitude, req.Longitude)})
}

// lookupAddress is a coarse grid lookup with a handful of known spots.
func lookupAddress(lat, lng float64) string {
	known := map[string]string{
		"52.5,13.4": "Alexanderplatz, Berlin",
		"51.5,-0.1": "Trafalgar Square, London",
		"48.9,2.4":  "Place de la République, Paris",
		"59.9,10.8": "Karl Johans gate, Oslo",
	}
	key := fmt.Sprintf("%.1f,%.1f", lat, lng)
	if addr, ok := known[key]; ok {
		return addr
	}
	return fmt.Sprintf("Near %.4f, %.4f", lat, lng)
}

func (s *Server) handleGet(msg *nats.Msg) {
	var req struct {
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		respondErr(msg, "bad get-event request")
		return
	}

	s.mu.Lock()
	ev, ok := s.events[req.EventID]
	s.mu.Unlock()
	if !ok {
		respondErr(msg, "event not found: %s", req.EventID)
		return
	}
	respond(msg, ev)
}

func (s *Server) handleCreate(msg *nats.Msg) {
	var args backend.CreateEventArgs
	if err := json.Unmarshal(msg.Data, &args); err != nil {
		respondErr(msg, "bad create-event request")
		return
	}
	if args.ClubID != DemoClubID {
		respondErr(msg, "not authorized to create events in club %q", args.ClubID)
		return
	}

	id := slug.Make(args.Name)
	if id == "" {
		id = "event"
	}
	id = id + "-" + xid.New().String()

	ev := backend.Event{
		ID:           id,
		ClubID:       args.ClubID,
		Name:         args.Name,
		SportTypeIDs: append([]string(nil), args.SportTypeIDs...),
		StartTime:    args.StartTime,
		EndTime:      args.EndTime,
		Latitude:     args.Latitude,
		Longitude:    args.Longitude,
		Privacy:      args.Privacy,
		Attributes:   args.Attributes,
	}
	sort.Strings(ev.SportTypeIDs)
	if args.Description != nil {
		ev.Description = *args.Description
	}
	if args.Address != nil {
		ev.Address = *args.Address
	}
	if args.LocationText != nil {
		ev.LocationText = *args.LocationText
	}
	if args.MaxParticipants != nil {
		mp := *args.MaxParticipants
		ev.MaxParticipants = &mp
	}
	if args.CoverImageURL != nil {
		ev.CoverImageURL = *args.CoverImageURL
	}
	if args.RecurrencePattern != nil {
		ev.RecurrencePattern = *args.RecurrencePattern
		ev.SeriesID = "series-" + xid.New().String()
		if args.SeriesEndDate != nil {
			ev.SeriesEndDate = *args.SeriesEndDate
		}
	}

	s.mu.Lock()
	s.events[id] = ev
	s.mu.Unlock()

	logger.Info("Stub created event %s", id)
	respond(msg, struct {
		EventID string `json:"event_id"`
	}{id})
}

func (s *Server) handleUpdate(msg *nats.Msg) {
	var args backend.UpdateEventArgs
	if err := json.Unmarshal(msg.Data, &args); err != nil {
		respondErr(msg, "bad update-event request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[args.EventID]
	if !ok {
		respondErr(msg, "event not found: %s", args.EventID)
		return
	}

	ev.Name = args.Name
	ev.SportTypeIDs = append([]string(nil), args.SportTypeIDs...)
	sort.Strings(ev.SportTypeIDs)
	ev.StartTime = args.StartTime
	ev.EndTime = args.EndTime
	ev.Latitude = args.Latitude
	ev.Longitude = args.Longitude
	ev.Privacy = args.Privacy
	ev.Attributes = args.Attributes
	ev.Description = ""
	if args.Description != nil {
		ev.Description = *args.Description
	}
	ev.Address = ""
	if args.Address != nil {
		ev.Address = *args.Address
	}
	ev.LocationText = ""
	if args.LocationText != nil {
		ev.LocationText = *args.LocationText
	}
	ev.MaxParticipants = nil
	if args.MaxParticipants != nil {
		mp := *args.MaxParticipants
		ev.MaxParticipants = &mp
	}
	ev.CoverImageURL = ""
	if args.CoverImageURL != nil {
		ev.CoverImageURL = *args.CoverImageURL
	}
	// Series membership is untouched by instance updates.

	s.events[args.EventID] = ev
	respond(msg, struct{}{})
}
