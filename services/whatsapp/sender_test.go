package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwilioSenderPostsMessage(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewTwilioSender("AC123", "secret", "+910000000000", server.URL)
	err := sender.Send(context.Background(), "+911234567890", "Hello!")
	require.NoError(t, err)

	require.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	require.Equal(t, "AC123", gotUser)
	require.Equal(t, "secret", gotPass)
	require.Equal(t, "whatsapp:+910000000000", gotFrom)
	require.Equal(t, "whatsapp:+911234567890", gotTo)
	require.Equal(t, "Hello!", gotBody)
}

func TestTwilioSenderKeepsExistingChannelPrefix(t *testing.T) {
	var gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewTwilioSender("AC123", "secret", "+910000000000", server.URL)
	require.NoError(t, sender.Send(context.Background(), "whatsapp:+911234567890", "Hi"))
	require.Equal(t, "whatsapp:+911234567890", gotTo)
}

func TestTwilioSenderSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewTwilioSender("AC123", "wrong", "+910000000000", server.URL)
	err := sender.Send(context.Background(), "+911234567890", "Hello!")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 401")
}
