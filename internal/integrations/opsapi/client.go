package opsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

var opsTracer = otel.Tracer("portal.internal.integrations.opsapi")

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Endpoint labels used for metrics and spans.
const (
	endpointValidatePostcode = "validate_postcode"
	endpointListServices     = "list_services"
	endpointGetSlots         = "get_slots"
	endpointListAppointments = "list_appointments"
)

var scopePaths = map[domain.CalendarScope]string{
	domain.ScopeStaff:    "/api/staff/jobs",
	domain.ScopeAdmin:    "/api/admin/appointments",
	domain.ScopeCustomer: "/api/customer/bookings",
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Metrics interface {
	ObserveUpstream(endpoint, outcome string, elapsed time.Duration)
}

// Client talks to the cleaning operations API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
	log        Logger
	metrics    Metrics
}

// NewClient creates an operations API client. loc is used for timestamps sent without a zone.
// m may be nil.
func NewClient(baseURL string, timeout time.Duration, loc *time.Location, log Logger, m Metrics) *Client {
	if loc == nil {
		loc = time.UTC
	}
	if m == nil {
		m = noopMetrics{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		loc:     loc,
		log:     log,
		metrics: m,
	}
}

// ValidatePostcode asks the backend whether postcode is serviceable.
// It returns the services the backend listed with its confirmation, possibly none.
func (c *Client) ValidatePostcode(ctx context.Context, postcode string) ([]domain.Service, error) {
	data, err := c.call(ctx, endpointValidatePostcode, http.MethodPost, "/api/postcodes/validate", nil, postcodeRequest{Postcode: postcode})
	if err != nil {
		return nil, err
	}
	return decodeServices(data)
}

// ListServices returns the services offered in the postcode area.
func (c *Client) ListServices(ctx context.Context, postcode string) ([]domain.Service, error) {
	query := url.Values{}
	query.Set("postcode", postcode)

	data, err := c.call(ctx, endpointListServices, http.MethodGet, "/api/services", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeServices(data)
}

// GetSlots returns the slots of one day. An empty list is a fully booked day, not an error.
func (c *Client) GetSlots(ctx context.Context, req SlotsRequest) ([]domain.Slot, error) {
	query := url.Values{}
	query.Set("postcode", req.Postcode)
	query.Set("service_id", strconv.FormatInt(req.ServiceID, 10))
	query.Set("date", req.Date.Format(domain.DateFormat))
	if req.StaffID != nil {
		query.Set("staff_id", strconv.FormatInt(*req.StaffID, 10))
	}

	data, err := c.call(ctx, endpointGetSlots, http.MethodGet, "/api/availability/slots", query, nil)
	if err != nil {
		return nil, err
	}

	var raw []slotDTO
	switch {
	case !present(data):
	case isArray(data):
		err = json.Unmarshal(data, &raw)
	default:
		var wrapped slotsDTO
		err = json.Unmarshal(data, &wrapped)
		raw = wrapped.Slots
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode slots: %v", ErrInvalidResponse, err)
	}

	slots := make([]domain.Slot, 0, len(raw))
	for _, dto := range raw {
		slot, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// ListAppointments returns the appointments of a scope between From and To, both inclusive dates.
func (c *Client) ListAppointments(ctx context.Context, req AppointmentsRequest) ([]domain.Appointment, error) {
	path, ok := scopePaths[req.Scope]
	if !ok {
		return nil, fmt.Errorf("%w: unknown calendar scope %q", ErrInternal, req.Scope)
	}

	query := url.Values{}
	query.Set("date_from", req.From.Format(domain.DateFormat))
	query.Set("date_to", req.To.Format(domain.DateFormat))
	if req.StaffID != nil {
		query.Set("staff_id", strconv.FormatInt(*req.StaffID, 10))
	}

	data, err := c.call(ctx, endpointListAppointments, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var raw []appointmentDTO
	if err := decodeList(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
	}

	appointments := make([]domain.Appointment, 0, len(raw))
	for _, dto := range raw {
		appt, err := dto.toDomain(c.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		appointments = append(appointments, appt)
	}
	return appointments, nil
}

// call runs one request inside a client span and records its outcome.
func (c *Client) call(ctx context.Context, endpoint, method, path string, query url.Values, in interface{}) (json.RawMessage, error) {
	ctx, span := opsTracer.Start(ctx, "opsapi."+endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("opsapi.path", path),
	)

	started := time.Now()
	data, status, err := c.roundTrip(ctx, method, path, query, in)
	c.metrics.ObserveUpstream(endpoint, outcome(err), time.Since(started))
	span.SetAttributes(attribute.Int("http.status_code", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if _, ok := Message(err); ok {
			c.log.Info("opsapi %s rejected: %v", endpoint, err)
		} else {
			c.log.Error("opsapi %s failed: %v", endpoint, err)
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in interface{}) (json.RawMessage, int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, ok := errorMessage(raw); ok {
			return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: msg}
		}
		return nil, resp.StatusCode, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	data, err := unwrap(raw, resp.StatusCode)
	return data, resp.StatusCode, err
}

// unwrap strips the response wrapper: a bare array, {success,data}, {results} or the object itself.
// {success:true} without data yields a nil payload. success:false is turned into an *APIError even on a 2xx status.
func unwrap(raw []byte, status int) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}
	if isArray(raw) {
		return raw, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if env.Success != nil && !*env.Success {
		msg, ok := errorMessage(raw)
		if !ok {
			msg = defaultRejectMessage
		}
		return nil, &APIError{Status: status, Message: msg}
	}

	switch {
	case present(env.Data):
		return env.Data, nil
	case present(env.Results):
		return env.Results, nil
	case env.Success != nil:
		return nil, nil
	default:
		return raw, nil
	}
}

// errorMessage extracts a message from {error:{message}}, {error:"..."}, {message} or {detail}.
func errorMessage(raw []byte) (string, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", false
	}

	if present(env.Error) {
		var s string
		if err := json.Unmarshal(env.Error, &s); err == nil && s != "" {
			return s, true
		}
		var obj errorObject
		if err := json.Unmarshal(env.Error, &obj); err == nil {
			if obj.Message != "" {
				return obj.Message, true
			}
			if obj.Detail != "" {
				return obj.Detail, true
			}
		}
	}
	if env.Message != "" {
		return env.Message, true
	}
	if env.Detail != "" {
		return env.Detail, true
	}
	return "", false
}

// decodeList accepts a bare array or an object holding the array under "results".
// A missing payload decodes as an empty list.
func decodeList(data json.RawMessage, out interface{}) error {
	if !present(data) {
		return nil
	}
	if isArray(data) {
		return json.Unmarshal(data, out)
	}
	var wrapped struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if !present(wrapped.Results) {
		return errors.New("no results list in response")
	}
	return json.Unmarshal(wrapped.Results, out)
}

func decodeServices(data json.RawMessage) ([]domain.Service, error) {
	var raw []serviceDTO
	if err := decodeList(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode services: %v", ErrInvalidResponse, err)
	}

	services := make([]domain.Service, 0, len(raw))
	for _, dto := range raw {
		services = append(services, dto.toDomain())
	}
	return services, nil
}

func isArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

func present(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveUpstream(string, string, time.Duration) {}
