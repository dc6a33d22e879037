package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/service"

	"golang.org/x/oauth2/clientcredentials"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client reads mailbox messages through the Microsoft Graph API using
// app-only client-credentials authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

func NewClient(ctx context.Context, cfg Config, appLogger *logger.Logger) *Client {
	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	return &Client{
		httpClient: credentials.Client(ctx),
		baseURL:    graphBaseURL,
		logger:     appLogger,
	}
}

type graphEmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	ID               string         `json:"id"`
	Subject          string         `json:"subject"`
	BodyPreview      string         `json:"bodyPreview"`
	Body             graphItemBody  `json:"body"`
	Importance       string         `json:"importance"`
	ReceivedDateTime time.Time      `json:"receivedDateTime"`
	From             graphRecipient `json:"from"`
}

// ListRecentMessages implements service.MailSource. Tenant and mailbox ids
// on the returned messages are filled in by the caller, which knows which
// mailbox record the address belongs to.
func (c *Client) ListRecentMessages(ctx context.Context, mailboxAddress string, maxResults int) ([]*model.EmailMessage, error) {
	params := url.Values{}
	params.Set("$top", fmt.Sprintf("%d", maxResults))
	params.Set("$orderby", "receivedDateTime desc")
	params.Set("$select", "id,subject,bodyPreview,body,importance,receivedDateTime,from")

	endpoint := fmt.Sprintf("%s/users/%s/messages?%s", c.baseURL, url.PathEscape(mailboxAddress), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("graph request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Value []graphMessage `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode graph response: %w", err)
	}

	messages := make([]*model.EmailMessage, 0, len(payload.Value))
	for _, m := range payload.Value {
		messages = append(messages, convertMessage(&m))
	}

	c.logger.Debug("Fetched messages from Graph:", len(messages), "mailbox:", mailboxAddress)
	return messages, nil
}

func convertMessage(m *graphMessage) *model.EmailMessage {
	email := model.NewEmailMessage(
		"", "", m.ID,
		m.From.EmailAddress.Address,
		m.From.EmailAddress.Name,
		m.Subject,
		m.Body.Content,
		m.ReceivedDateTime,
	)
	email.BodyPreview = m.BodyPreview
	email.Importance = m.Importance
	return email
}

var _ service.MailSource = (*Client)(nil)
