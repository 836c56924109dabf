package instagram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const csrfCookieName = "csrftoken"

// SessionResolver resolves media through the same web endpoint as WebResolver
// but with a logged-in browser session, which Instagram requires for media it
// hides from anonymous visitors.
type SessionResolver struct {
	*WebResolver

	client   *Client
	username string
	password string
}

// NewSessionResolver creates a resolver that authenticates with the given
// credentials. Login must be called before Resolve.
func NewSessionResolver(client *Client, username, password string) *SessionResolver {
	return &SessionResolver{
		WebResolver: NewWebResolver(client),
		client:      client,
		username:    username,
		password:    password,
	}
}

// Login performs the web login flow: fetch a CSRF token, then post the
// credentials. The session cookie lives in the client's cookie jar afterwards.
func (r *SessionResolver) Login(ctx context.Context) error {
	token, err := r.fetchCSRFToken(ctx)
	if err != nil {
		return fmt.Errorf("fetch csrf token: %w", err)
	}

	r.client.SetHeader("X-CSRFToken", token)

	form := url.Values{}
	form.Set("username", r.username)
	// The browser login endpoint expects the password wrapped in this envelope.
	// Version 0 means plaintext over TLS.
	form.Set("enc_password", fmt.Sprintf("#PWD_INSTAGRAM_BROWSER:0:%d:%s", time.Now().Unix(), r.password))
	form.Set("queryParams", "{}")
	form.Set("optIntoOneTap", "false")

	resp, err := r.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, baseURL+loginPath, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		return req, nil
	})
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkStatus(resp.StatusCode); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var login loginResponse
	if err := decodeJSON(resp, &login); err != nil {
		return fmt.Errorf("login response: %w", err)
	}

	if !login.Authenticated {
		msg := login.Message
		if msg == "" {
			msg = "invalid credentials"
		}

		return &Error{Kind: ErrorKindAuth, Message: msg, Code: resp.StatusCode}
	}

	return nil
}

func (r *SessionResolver) fetchCSRFToken(ctx context.Context) (string, error) {
	resp, err := r.client.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, baseURL+"/", nil)
	})
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	for _, cookie := range r.client.httpClient.Jar.Cookies(resp.Request.URL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value, nil
		}
	}

	return "", &Error{Kind: ErrorKindAuth, Message: "no csrf token in login page response"}
}
