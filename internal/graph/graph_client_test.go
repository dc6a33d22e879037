package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mailflow/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messagesPayload = `{
  "value": [
    {
      "id": "AAMkAG-1",
      "subject": "Quarterly numbers",
      "bodyPreview": "Attached are the",
      "body": {"contentType": "text", "content": "Attached are the quarterly numbers."},
      "importance": "high",
      "receivedDateTime": "2026-08-28T09:30:00Z",
      "from": {"emailAddress": {"name": "Alice", "address": "alice@co.com"}}
    },
    {
      "id": "AAMkAG-2",
      "subject": "Lunch?",
      "bodyPreview": "Are you free",
      "body": {"contentType": "text", "content": "Are you free at noon?"},
      "importance": "normal",
      "receivedDateTime": "2026-08-28T08:00:00Z",
      "from": {"emailAddress": {"name": "Bob", "address": "bob@co.com"}}
    }
  ]
}`

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		httpClient: server.Client(),
		baseURL:    server.URL,
		logger:     logger.New(),
	}
}

func TestListRecentMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/users/inbox@co.com/messages")
		assert.Equal(t, "10", r.URL.Query().Get("$top"))
		assert.Equal(t, "receivedDateTime desc", r.URL.Query().Get("$orderby"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(messagesPayload))
	}))
	defer server.Close()

	client := newTestClient(server)
	messages, err := client.ListRecentMessages(context.Background(), "inbox@co.com", 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	first := messages[0]
	assert.Equal(t, "AAMkAG-1", first.MessageID)
	assert.Equal(t, "alice@co.com", first.SenderEmail)
	assert.Equal(t, "Alice", first.SenderName)
	assert.Equal(t, "Quarterly numbers", first.Subject)
	assert.Equal(t, "Attached are the quarterly numbers.", first.BodyContent)
	assert.Equal(t, "high", first.Importance)
	assert.NotEmpty(t, first.ID)
	assert.Empty(t, first.TenantID)
}

func TestListRecentMessagesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": "ErrorAccessDenied"}}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	messages, err := client.ListRecentMessages(context.Background(), "inbox@co.com", 10)
	assert.Nil(t, messages)
	assert.ErrorContains(t, err, "status 403")
}

func TestListRecentMessagesBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.ListRecentMessages(context.Background(), "inbox@co.com", 10)
	assert.ErrorContains(t, err, "failed to decode graph response")
}
