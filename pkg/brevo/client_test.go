package brevo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autorecurso/autorecurso-backend/pkg/config"
	pkgerrors "github.com/autorecurso/autorecurso-backend/pkg/errors"
	"github.com/autorecurso/autorecurso-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	client, err := NewClient(context.Background(), config.EmailConfig{
		APIKey:      "brevo-key",
		BaseURL:     server.URL,
		SenderName:  "AUTO RECURSO",
		SenderEmail: "contato@autorecurso.online",
	}, logg)
	require.NoError(t, err)
	return client
}

func TestSendBuildsExpectedPayload(t *testing.T) {
	var captured sendRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/smtp/email", r.URL.Path)
		require.Equal(t, "brevo-key", r.Header.Get("api-key"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Send(context.Background(), Message{
		ToEmail:     "maria.souza@example.com",
		Subject:     "✅ Seu Recurso de Multa - Veículo ABC1D23",
		HTMLContent: "<p>conteúdo</p>",
		TextContent: "conteúdo",
	})
	require.NoError(t, err)

	require.Equal(t, "AUTO RECURSO", captured.Sender.Name)
	require.Equal(t, "contato@autorecurso.online", captured.Sender.Email)
	require.Len(t, captured.To, 1)
	require.Equal(t, "maria.souza", captured.To[0].Name)
	require.Equal(t, "maria.souza@example.com", captured.To[0].Email)
}

func TestSendMapsHTTPFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))

	err := client.Send(context.Background(), Message{ToEmail: "x@example.com", Subject: "s", HTMLContent: "<p>x</p>"})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	_, err := NewClient(context.Background(), config.EmailConfig{}, logg)
	require.Error(t, err)
}
