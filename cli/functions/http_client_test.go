package functions

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grantlink/grantlink/cli/config"
	"github.com/grantlink/grantlink/models"
)

type echoResponse struct {
	Echo string `json:"echo"`
}

func TestRequestRetriesWithBody(t *testing.T) {
	var (
		echoCalls     int
		retriedBody   string
		freshLogin    = models.SuccessfulUserLoginResponse{UserName: "admin", AuthToken: "fresh-token"}
		writeEnvelope = func(w http.ResponseWriter, status int, env envelope) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(env)
		}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/adm/authenticate":
			data, _ := json.Marshal(freshLogin)
			writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
		case "/api/echo":
			echoCalls++
			body, _ := io.ReadAll(r.Body)
			if echoCalls == 1 {
				writeEnvelope(w, http.StatusUnauthorized, envelope{Success: false, Error: "token expired"})
				return
			}
			retriedBody = string(body)
			data, _ := json.Marshal(echoResponse{Echo: string(body)})
			writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
		default:
			writeEnvelope(w, http.StatusNotFound, envelope{Success: false, Error: "no such route"})
		}
	}))
	defer server.Close()

	config.SetContext("http-client-test", config.Context{
		Endpoint: server.URL,
		Username: "admin",
		Password: "secret",
	})
	config.SetCurrentContext("http-client-test")
	defer config.DeleteContext("http-client-test")

	payload := map[string]string{"name": "rewind-check"}
	result := request[echoResponse](http.MethodPost, "/api/echo", payload)

	assert.Equal(t, 2, echoCalls)
	assert.Contains(t, retriedBody, "rewind-check")
	assert.Contains(t, result.Echo, "rewind-check")
}
