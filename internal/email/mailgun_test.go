package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/board-api/config"
)

func newTestSender(baseURL string) *MailgunSender {
	return NewMailgunSender(config.EmailConfig{
		Provider: "mailgun",
		From:     "OpenBoard <no-reply@openboard.test>",
		Timeout:  2 * time.Second,
		Mailgun: config.MailgunConfig{
			BaseURL: baseURL,
			Domain:  "mg.openboard.test",
			APIKey:  "key-secret",
		},
	})
}

func TestMailgunSendSuccess(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotForm map[string][]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, _ := r.BasicAuth()
		gotAuth = user + ":" + pass
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":      "<20260901.1@mg.openboard.test>",
			"message": "Queued. Thank you.",
		})
	}))
	defer srv.Close()

	sender := newTestSender(srv.URL)
	id, err := sender.Send(context.Background(), &Message{
		To:       []string{"a@acme.test", "b@acme.test"},
		Subject:  "Approved",
		BodyHTML: "<p>hi</p>",
		BodyText: "hi",
		ReplyTo:  "support@openboard.test",
	})
	require.NoError(t, err)

	assert.Equal(t, "<20260901.1@mg.openboard.test>", id)
	assert.Equal(t, "/mg.openboard.test/messages", gotPath)
	assert.Equal(t, "api:key-secret", gotAuth)
	assert.Equal(t, []string{"a@acme.test", "b@acme.test"}, gotForm["to"])
	assert.Equal(t, []string{"Approved"}, gotForm["subject"])
	assert.Equal(t, []string{"<p>hi</p>"}, gotForm["html"])
	assert.Equal(t, []string{"hi"}, gotForm["text"])
	assert.Equal(t, []string{"support@openboard.test"}, gotForm["h:Reply-To"])
	assert.Equal(t, []string{"OpenBoard <no-reply@openboard.test>"}, gotForm["from"])
}

func TestMailgunSendOmitsEmptyOptionalFields(t *testing.T) {
	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		json.NewEncoder(w).Encode(map[string]string{"id": "x"})
	}))
	defer srv.Close()

	sender := newTestSender(srv.URL)
	_, err := sender.Send(context.Background(), &Message{
		To:       []string{"a@acme.test"},
		Subject:  "s",
		BodyHTML: "<p>b</p>",
	})
	require.NoError(t, err)

	assert.NotContains(t, gotForm, "text")
	assert.NotContains(t, gotForm, "h:Reply-To")
}

func TestMailgunSendProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid private key"})
	}))
	defer srv.Close()

	sender := newTestSender(srv.URL)
	id, err := sender.Send(context.Background(), &Message{
		To:       []string{"a@acme.test"},
		Subject:  "s",
		BodyHTML: "b",
	})
	assert.Empty(t, id)

	var dErr *DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "mailgun", dErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, dErr.StatusCode)
	assert.Equal(t, "Invalid private key", dErr.Message)
}

func TestMailgunSendConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	sender := newTestSender(srv.URL)
	_, err := sender.Send(context.Background(), &Message{
		To:       []string{"a@acme.test"},
		Subject:  "s",
		BodyHTML: "b",
	})

	var dErr *DeliveryError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "mailgun", dErr.Provider)
	assert.Zero(t, dErr.StatusCode)
}
