package functions

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/grantlink/grantlink/cli/config"
	"github.com/grantlink/grantlink/models"
)

// envelope mirrors the server's wire format: {success, data} or {success, error}
type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// request - executes an authenticated API request against the current context
// and unwraps the response envelope into T
func request[T any](method, route string, payload any) *T {
	var (
		_, ctx = config.GetCurrentContext()
		req    *http.Request
		err    error
	)
	if payload == nil {
		req, err = http.NewRequest(method, ctx.Endpoint+route, nil)
	} else {
		payloadBytes, jsonErr := json.Marshal(payload)
		if jsonErr != nil {
			log.Fatalf("Error in request JSON marshalling: %s", jsonErr)
		}
		req, err = http.NewRequest(method, ctx.Endpoint+route, bytes.NewReader(payloadBytes))
	}
	if err != nil {
		log.Fatalf("Client could not create request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ctx.MasterKey != "" {
		req.Header.Set("Authorization", "Bearer "+ctx.MasterKey)
	} else if ctx.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+ctx.AuthToken)
	} else if ctx.Username != "" {
		req.Header.Set("Authorization", "Bearer "+getAuthToken(ctx, true))
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Client error making http request: %s", err)
	}
	defer res.Body.Close()
	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("Client could not read response body: %s", err)
	}
	// token expired, retry once with a fresh login
	if res.StatusCode == http.StatusUnauthorized && ctx.Username != "" && ctx.MasterKey == "" {
		// the first attempt drained the body, rewind it before resending
		if req.GetBody != nil {
			if req.Body, err = req.GetBody(); err != nil {
				log.Fatalf("Client could not rewind request body: %s", err)
			}
		}
		req.Header.Set("Authorization", "Bearer "+getAuthToken(ctx, false))
		res, err = http.DefaultClient.Do(req)
		if err != nil {
			log.Fatalf("Client error making http request: %s", err)
		}
		defer res.Body.Close()
		resBodyBytes, err = io.ReadAll(res.Body)
		if err != nil {
			log.Fatalf("Client could not read response body: %s", err)
		}
	}
	var env envelope
	if err := json.Unmarshal(resBodyBytes, &env); err != nil {
		log.Fatalf("Error unmarshalling JSON: %s", err)
	}
	if !env.Success {
		log.Fatalf("Error (%d): %s", res.StatusCode, env.Error)
	}
	body := new(T)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, body); err != nil {
			log.Fatalf("Error unmarshalling JSON: %s", err)
		}
	}
	return body
}

// requestRaw - executes an authenticated GET against the current context and
// returns the body verbatim; used for routes that serve plain text
func requestRaw(route string) string {
	_, ctx := config.GetCurrentContext()
	req, err := http.NewRequest(http.MethodGet, ctx.Endpoint+route, nil)
	if err != nil {
		log.Fatalf("Client could not create request: %s", err)
	}
	if ctx.MasterKey != "" {
		req.Header.Set("Authorization", "Bearer "+ctx.MasterKey)
	} else if ctx.Username != "" {
		req.Header.Set("Authorization", "Bearer "+getAuthToken(ctx, true))
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Client error making http request: %s", err)
	}
	defer res.Body.Close()
	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("Client could not read response body: %s", err)
	}
	if res.StatusCode != http.StatusOK {
		log.Fatalf("Error (%d): %s", res.StatusCode, string(resBodyBytes))
	}
	return string(resBodyBytes)
}

// getAuthToken - resolves a user JWT for the current context, reusing the
// cached token unless forceNew
func getAuthToken(ctx config.Context, cached bool) string {
	if cached && ctx.AuthToken != "" {
		return ctx.AuthToken
	}
	authParams := &models.UserAuthParams{UserName: ctx.Username, Password: ctx.Password}
	payloadBytes, err := json.Marshal(authParams)
	if err != nil {
		log.Fatalf("Error in request JSON marshalling: %s", err)
	}
	res, err := http.Post(ctx.Endpoint+"/api/users/adm/authenticate", "application/json", bytes.NewReader(payloadBytes))
	if err != nil {
		log.Fatalf("Client error making http request: %s", err)
	}
	defer res.Body.Close()
	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("Client could not read response body: %s", err)
	}
	var env envelope
	if err := json.Unmarshal(resBodyBytes, &env); err != nil {
		log.Fatalf("Error unmarshalling JSON: %s", err)
	}
	if !env.Success {
		log.Fatalf("Error authenticating: %s", env.Error)
	}
	var login models.SuccessfulUserLoginResponse
	if err := json.Unmarshal(env.Data, &login); err != nil {
		log.Fatalf("Error unmarshalling JSON: %s", err)
	}
	config.SetAuthToken(login.AuthToken)
	return login.AuthToken
}
