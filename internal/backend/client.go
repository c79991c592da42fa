// Package backend is the client side of the club platform's remote procedures.
// The wizard reaches the backend through exactly three narrow interfaces:
// the sport-type catalog, reverse geocoding, and the create/update event
// procedures (plus a fetch for edit-mode hydration). Requests are JSON over
// NATS request/reply.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matchday-app/matchday/internal/logger"
	"github.com/nats-io/nats.go"
)

// RPC subjects. The contract is fixed by the backend.
const (
	SubjectSportCatalog = "matchday.rpc.catalog.sports"
	SubjectReverseGeo   = "matchday.rpc.geo.reverse"
	SubjectEventGet     = "matchday.rpc.event.get"
	SubjectEventCreate  = "matchday.rpc.event.create"
	SubjectEventUpdate  = "matchday.rpc.event.update"
)

// DefaultRequestTimeout bounds a single request/reply round trip. Calls are
// at-most-once user-initiated actions; there is no retry on top of this.
const DefaultRequestTimeout = 5 * time.Second

// Service is the surface the wizard depends on. Tests substitute fakes.
type Service interface {
	SportTypes(ctx context.Context) ([]SportType, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	CreateEvent(ctx context.Context, args CreateEventArgs) (string, error)
	UpdateEvent(ctx context.Context, args UpdateEventArgs) error
}

// Client implements Service over a NATS connection.
type Client struct {
	nc      *nats.Conn
	timeout time.Duration
}

// NewClient wraps an established NATS connection.
func NewClient(nc *nats.Conn) *Client {
	return &Client{nc: nc, timeout: DefaultRequestTimeout}
}

// reply envelope shared by all procedures. A non-empty Error means the
// backend rejected the call; Result holds the procedure-specific payload.
type rpcReply struct {
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// call performs one JSON request/reply round trip and decodes the result
// into out (which may be nil for ack-only procedures).
func (c *Client) call(ctx context.Context, subject string, req, out any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", subject, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger.Debug("RPC request: subject=%s bytes=%d", subject, len(data))
	msg, err := c.nc.RequestWithContext(ctx, subject, data)
	if err != nil {
		logger.Error("RPC transport failure on %s: %v", subject, err)
		return fmt.Errorf("calling %s: %w", subject, err)
	}

	var reply rpcReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return fmt.Errorf("decoding %s reply: %w", subject, err)
	}
	if reply.Error != "" {
		logger.Warn("RPC rejected on %s: %s", subject, reply.Error)
		return &RemoteProcedureError{Procedure: subject, Message: reply.Error}
	}
	if out != nil && len(reply.Result) > 0 {
		if err := json.Unmarshal(reply.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", subject, err)
		}
	}
	return nil
}

// SportTypes fetches the ordered sport-type catalog.
func (c *Client) SportTypes(ctx context.Context) ([]SportType, error) {
	var result struct {
		Sports []SportType `json:"sports"`
	}
	if err := c.call(ctx, SubjectSportCatalog, struct{}{}, &result); err != nil {
		return nil, err
	}
	return result.Sports, nil
}

// ReverseGeocode resolves coordinates to a best-effort formatted address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	req := struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{lat, lng}
	var result struct {
		Address string `json:"address"`
	}
	if err := c.call(ctx, SubjectReverseGeo, req, &result); err != nil {
		return "", err
	}
	return result.Address, nil
}

// GetEvent fetches the full record of one existing event.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	req := struct {
		EventID string `json:"event_id"`
	}{eventID}
	var ev Event
	if err := c.call(ctx, SubjectEventGet, req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// CreateEvent invokes the create procedure and returns the new event id.
func (c *Client) CreateEvent(ctx context.Context, args CreateEventArgs) (string, error) {
	var result struct {
		EventID string `json:"event_id"`
	}
	if err := c.call(ctx, SubjectEventCreate, args, &result); err != nil {
		return "", err
	}
	return result.EventID, nil
}

// UpdateEvent invokes the update procedure. Success is a bare acknowledgement.
func (c *Client) UpdateEvent(ctx context.Context, args UpdateEventArgs) error {
	return c.call(ctx, SubjectEventUpdate, args, nil)
}
