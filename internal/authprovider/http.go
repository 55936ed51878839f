package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPRegistrar talks to the auth provider's REST sign-up endpoint.
type HTTPRegistrar struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPRegistrar(baseURL, apiKey string, client *http.Client) *HTTPRegistrar {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRegistrar{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UID   string `json:"localId"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *HTTPRegistrar) Register(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(signUpRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode sign-up request: %w", err)
	}

	target := r.baseURL + "/v1/accounts:signUp?key=" + r.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sign-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign-up request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var decoded signUpResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode sign-up response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return decoded.UID, nil
	}
	if decoded.Error.Message == "EMAIL_EXISTS" {
		return "", ErrEmailTaken
	}
	return "", fmt.Errorf("sign-up failed with status %d: %s", resp.StatusCode, decoded.Error.Message)
}
