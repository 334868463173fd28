package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	infra "github.com/kaapihouse/kaapi/infra"
	"github.com/kaapihouse/kaapi/infra/tracing"
	protocols "github.com/kaapihouse/kaapi/protocols"
)

// BookingGatewayHttp talks to the booking service REST API. The base URL is
// environment-dependent (e.g. http://localhost:5001/api).
type BookingGatewayHttp struct {
	baseURL    string
	httpClient *http.Client
}

func NewBookingGatewayHttp(baseURL string, httpClient *http.Client) *BookingGatewayHttp {
	return &BookingGatewayHttp{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type CreateBookingRequest struct {
	CustomerName string  `json:"customer_name"`
	DrinkName    string  `json:"drink_name"`
	Price        float64 `json:"price"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (g *BookingGatewayHttp) List(ctx context.Context) ([]protocols.Booking, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/bookings", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	tracing.Inject(ctx, req.Header)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, infra.NewNetworkError(fmt.Sprintf("listing bookings: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, infra.NewServerError(fmt.Sprintf("listing bookings: status %d", resp.StatusCode))
	}

	var bookings []protocols.Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (g *BookingGatewayHttp) Create(ctx context.Context, input protocols.CreateBookingInput) (*protocols.Booking, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	payload := CreateBookingRequest{
		CustomerName: input.CustomerName,
		DrinkName:    input.DrinkName,
		Price:        input.Price,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/bookings", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	tracing.Inject(ctx, req.Header)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, infra.NewNetworkError(fmt.Sprintf("creating booking: %v", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		var booking protocols.Booking
		if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
			return nil, err
		}
		return &booking, nil
	case resp.StatusCode == http.StatusBadRequest:
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Message == "" {
			body.Message = "invalid booking"
		}
		return nil, infra.NewValidationError(body.Message)
	case resp.StatusCode >= 500:
		return nil, infra.NewServerError(fmt.Sprintf("creating booking: status %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("creating booking: unexpected status %d", resp.StatusCode)
	}
}
