package reddit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultTokenURL   = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIBaseURL = "https://oauth.reddit.com"
	DefaultUserAgent  = "FairDataUse/1.0"
	DefaultTimeout    = 5 * time.Second

	envClientID     = "REDDIT_CLIENT_ID"
	envClientSecret = "REDDIT_CLIENT_SECRET"
)

// CredentialsMissingError is returned before any network call when the API
// credentials are not configured. Missing holds the environment variable
// names of the absent secrets.
type CredentialsMissingError struct {
	Missing []string
}

func (e *CredentialsMissingError) Error() string {
	return "Missing Reddit API credentials: " + strings.Join(e.Missing, ", ")
}

// Verifier checks that a Reddit account exists using an app-only OAuth token.
type Verifier struct {
	cfg    config.RedditConfig
	client *http.Client
	closed int32
}

// NewVerifier creates a verifier. A nil httpClient gets a transport tuned for
// short outbound calls. Zero-valued endpoints, user agent and timeout fall
// back to the package defaults.
func NewVerifier(cfg config.RedditConfig, httpClient *http.Client) *Verifier {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := http.DefaultTransport
	if httpClient != nil && httpClient.Transport != nil {
		base = httpClient.Transport
	} else if httpClient == nil {
		base = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Timeout,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   cfg.Timeout,
			ExpectContinueTimeout: 1 * time.Second,
		}
	}

	client := &http.Client{Transport: &userAgentTransport{base: base, userAgent: cfg.UserAgent}}
	if httpClient != nil {
		client.Timeout = httpClient.Timeout
		client.CheckRedirect = httpClient.CheckRedirect
	}

	return &Verifier{cfg: cfg, client: client}
}

// Verify reports whether username exists. Token and lookup failures,
// including timeouts, are logged and reported as false. The only error
// returned is *CredentialsMissingError.
func (v *Verifier) Verify(ctx context.Context, username string) (bool, error) {
	var missing []string
	if v.cfg.ClientID == "" {
		missing = append(missing, envClientID)
	}
	if v.cfg.ClientSecret == "" {
		missing = append(missing, envClientSecret)
	}
	if len(missing) > 0 {
		return false, &CredentialsMissingError{Missing: missing}
	}

	tok, err := v.token(ctx)
	if err != nil {
		logger.Warn("reddit: token request failed", slog.String("username", username), slog.String("error", err.Error()))
		return false, nil
	}

	ok, err := v.lookup(ctx, tok, username)
	if err != nil {
		logger.Warn("reddit: user lookup failed", slog.String("username", username), slog.String("error", err.Error()))
		return false, nil
	}
	return ok, nil
}

func (v *Verifier) token(ctx context.Context) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
	defer cancel()

	cc := &clientcredentials.Config{
		ClientID:     v.cfg.ClientID,
		ClientSecret: v.cfg.ClientSecret,
		TokenURL:     v.cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return cc.Token(context.WithValue(ctx, oauth2.HTTPClient, v.client))
}

func (v *Verifier) lookup(ctx context.Context, tok *oauth2.Token, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
	defer cancel()

	endpoint := v.cfg.APIBaseURL + "/user/" + url.PathEscape(username) + "/about"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Info("reddit: user not found", slog.String("username", username), slog.Int("status", resp.StatusCode))
		return false, nil
	}
	return true, nil
}

// Close releases idle connections held by the verifier. Close is idempotent.
func (v *Verifier) Close() error {
	if v == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&v.closed, 0, 1) {
		return nil
	}
	v.client.CloseIdleConnections()
	return nil
}

// userAgentTransport stamps a fixed User-Agent on every outbound request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

func (t *userAgentTransport) CloseIdleConnections() {
	if c, ok := t.base.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

// package-level logger for pkg/reddit; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/reddit. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
