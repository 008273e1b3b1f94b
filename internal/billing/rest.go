package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wisewolf-edu/onboarding-service/internal/model"
)

// RESTProvider talks to the payment provider's JSON API. The per-tenant
// apiKey is sent as a bearer token on every call.
type RESTProvider struct {
	baseURL string
	client  *http.Client
}

func NewRESTProvider(baseURL string) *RESTProvider {
	return &RESTProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *RESTProvider) CreateCustomer(ctx context.Context, apiKey string, params CustomerParams) (string, error) {
	body := map[string]string{
		"email": params.Email,
		"name":  params.Name,
		"phone": params.Phone,
	}
	return p.post(ctx, apiKey, "/v1/customers", body)
}

func (p *RESTProvider) CreateSubscription(ctx context.Context, apiKey, customerID string, plan *model.Plan) (string, error) {
	body := map[string]any{
		"customer":    customerID,
		"plan":        plan.Name,
		"price_cents": plan.PriceCents,
		"currency":    plan.Currency,
		"interval":    plan.Interval,
	}
	return p.post(ctx, apiKey, "/v1/subscriptions", body)
}

func (p *RESTProvider) post(ctx context.Context, apiKey, path string, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("billing provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("billing provider returned %d: %s", resp.StatusCode, string(msg))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("billing provider response malformed: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("billing provider response missing id")
	}
	return out.ID, nil
}
