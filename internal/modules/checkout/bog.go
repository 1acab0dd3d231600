package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const tokenExpiryMargin = 60 * time.Second

// BOGClient talks to the Bank of Georgia e-commerce API: a
// client-credentials token exchange followed by order creation. The
// access token is cached until shortly before it expires.
type BOGClient struct {
	httpClient *http.Client
	loggerf    func(format string, args ...interface{})
	now        func() time.Time

	authURL     string
	ordersURL   string
	clientID    string
	secret      string
	callbackURL string
	successURL  string
	failURL     string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewBOGClient(loggerf func(format string, args ...interface{})) *BOGClient {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &BOGClient{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		loggerf:     loggerf,
		now:         time.Now,
		authURL:     envOrDefault("BOG_AUTH_URL", "https://oauth2.bog.ge/auth/realms/bog/protocol/openid-connect/token"),
		ordersURL:   envOrDefault("BOG_ORDERS_URL", "https://api.bog.ge/payments/v1/ecommerce/orders"),
		clientID:    os.Getenv("BOG_CLIENT_ID"),
		secret:      os.Getenv("BOG_CLIENT_SECRET"),
		callbackURL: os.Getenv("BOG_CALLBACK_URL"),
		successURL:  os.Getenv("BOG_SUCCESS_URL"),
		failURL:     os.Getenv("BOG_FAIL_URL"),
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// accessToken returns a cached token or exchanges credentials for a
// fresh one. The cache expires 60s early so an in-flight order never
// carries a token the gateway is about to reject.
func (c *BOGClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.loggerf("level=error msg=bog token exchange rejected status=%d body=%s", resp.StatusCode, string(body))
		return "", fmt.Errorf("token exchange returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)
	return c.token, nil
}

type bogOrderPayload struct {
	ApplicationType string   `json:"application_type"`
	Buyer           bogBuyer `json:"buyer"`
	CallbackURL     string   `json:"callback_url"`
	ExternalOrderID string   `json:"external_order_id"`
	Capture         string   `json:"capture"`
	PurchaseUnits   struct {
		Basket      []BasketItem `json:"basket"`
		TotalAmount float64      `json:"total_amount"`
		Currency    string       `json:"currency"`
	} `json:"purchase_units"`
	RedirectURLs struct {
		Success string `json:"success"`
		Fail    string `json:"fail"`
	} `json:"redirect_urls"`
	TTL           int      `json:"ttl"`
	PaymentMethod []string `json:"payment_method"`
}

type bogBuyer struct {
	FullName string `json:"full_name"`
	Email    string `json:"masked_email,omitempty"`
	Phone    string `json:"masked_phone,omitempty"`
}

type bogOrderResponse struct {
	ID    string `json:"id"`
	Links struct {
		Redirect struct {
			Href string `json:"href"`
		} `json:"redirect"`
	} `json:"_links"`
}

// CreateOrder registers an order with the gateway and returns its id
// and the redirect the user must follow to pay. All failure modes
// collapse into ErrGateway; detail is logged, never surfaced.
func (c *BOGClient) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		c.loggerf("level=error msg=bog auth failed err=%v", err)
		return nil, ErrGateway
	}

	payload := bogOrderPayload{
		ApplicationType: "web",
		Buyer: bogBuyer{
			FullName: req.BuyerName,
			Email:    req.BuyerEmail,
			Phone:    req.BuyerPhone,
		},
		CallbackURL:     c.callbackURL,
		ExternalOrderID: req.ExternalOrderID,
		Capture:         "automatic",
		TTL:             30,
		PaymentMethod:   []string{"card"},
	}
	payload.PurchaseUnits.Basket = req.Basket
	payload.PurchaseUnits.TotalAmount = req.TotalAmount
	payload.PurchaseUnits.Currency = req.Currency
	payload.RedirectURLs.Success = c.successURL
	payload.RedirectURLs.Fail = c.failURL

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, ErrGateway
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ordersURL, bytes.NewReader(raw))
	if err != nil {
		return nil, ErrGateway
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept-Language", "ka")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.loggerf("level=error msg=bog order request failed external_order_id=%s err=%v", req.ExternalOrderID, err)
		return nil, ErrGateway
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.loggerf("level=error msg=bog order rejected external_order_id=%s status=%d body=%s", req.ExternalOrderID, resp.StatusCode, string(body))
		return nil, ErrGateway
	}

	var out bogOrderResponse
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		c.loggerf("level=error msg=bog order response unreadable external_order_id=%s body=%s", req.ExternalOrderID, string(body))
		return nil, ErrGateway
	}

	c.loggerf("level=info msg=bog order created order_id=%s external_order_id=%s", out.ID, req.ExternalOrderID)
	return &OrderResponse{ID: out.ID, RedirectURL: out.Links.Redirect.Href}, nil
}
