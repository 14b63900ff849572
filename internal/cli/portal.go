package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/choose_service"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/choose_subscription"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_slots"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/get_subscription_options"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/select_slot"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_guest_details"
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers/submit_postcode"
)

// RedirectError is returned when the portal sends the visitor back to an earlier step
type RedirectError struct {
	To string
}

func (e *RedirectError) Error() string {
	return "portal redirected to " + e.To
}

// PortalClient walks the guest booking flow over HTTP, keeping the session cookie
type PortalClient struct {
	baseURL string
	client  *http.Client
}

func NewPortalClient(baseURL string, timeout time.Duration) (*PortalClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &PortalClient{
		baseURL: baseURL + "/api/v1/booking",
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
			// guard redirects are reported, not followed
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

func (p *PortalClient) SubmitPostcode(ctx context.Context, postcode string) (*submit_postcode.PostcodeResponse, error) {
	var out submit_postcode.PostcodeResponse
	err := p.do(ctx, http.MethodPost, "/postcode", nil, submit_postcode.PostcodeRequest{Postcode: postcode}, &out)
	return &out, err
}

func (p *PortalClient) ChooseService(ctx context.Context, serviceID int64, mode string) (*choose_service.ChooseResponse, error) {
	var out choose_service.ChooseResponse
	path := "/services/" + strconv.FormatInt(serviceID, 10) + "/choose"
	err := p.do(ctx, http.MethodPost, path, nil, choose_service.ChooseRequest{Mode: mode}, &out)
	return &out, err
}

func (p *PortalClient) SubscriptionOptions(ctx context.Context) (*get_subscription_options.OptionsResponse, error) {
	var out get_subscription_options.OptionsResponse
	err := p.do(ctx, http.MethodGet, "/subscription", nil, nil, &out)
	return &out, err
}

func (p *PortalClient) ChooseSubscription(ctx context.Context, frequency string, months int) (*choose_subscription.SubscriptionResponse, error) {
	var out choose_subscription.SubscriptionResponse
	err := p.do(ctx, http.MethodPost, "/subscription", nil,
		choose_subscription.SubscriptionRequest{Frequency: frequency, Months: months}, &out)
	return &out, err
}

func (p *PortalClient) Slots(ctx context.Context, date string) (*get_slots.SlotsResponse, error) {
	var out get_slots.SlotsResponse
	err := p.do(ctx, http.MethodGet, "/datetime/slots", url.Values{"date": {date}}, nil, &out)
	return &out, err
}

func (p *PortalClient) SelectSlot(ctx context.Context, date, at string) (*select_slot.SelectResponse, error) {
	var out select_slot.SelectResponse
	err := p.do(ctx, http.MethodPost, "/datetime", nil, select_slot.SelectRequest{Date: date, Time: at}, &out)
	return &out, err
}

func (p *PortalClient) SubmitDetails(ctx context.Context, req submit_guest_details.GuestDetailsRequest) (*submit_guest_details.BookingCompletedResponse, error) {
	var out submit_guest_details.BookingCompletedResponse
	err := p.do(ctx, http.MethodPost, "/details", nil, req, &out)
	return &out, err
}

func (p *PortalClient) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := p.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("portal unavailable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusSeeOther:
		return &RedirectError{To: resp.Header.Get("Location")}
	case resp.StatusCode >= http.StatusBadRequest:
		var e handlers.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			return fmt.Errorf("portal returned %s", resp.Status)
		}
		return fmt.Errorf("%s", e.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
