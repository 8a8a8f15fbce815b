package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// Credentials is the pair the console issues during an interactive login:
// a bearer token for the Authorization header and the x-authorization
// session cookie. API calls need both.
type Credentials struct {
	Token  string
	Cookie string
}

// ErrNoCredentials means the login flow completed without capturing both
// the token and the session cookie.
var ErrNoCredentials = errors.New("token or session cookie not captured during login")

const (
	tokenPath     = "/api/v3/token"
	sessionCookie = "x-authorization"

	loginTimeout  = 60 * time.Second
	clickTimeout  = 5 * time.Second
	postLoginWait = 10 * time.Second
)

// The console login form markup differs between versions, so both the
// input and the submit button are located by fallback.
var (
	usernameSelector = `input[type="text"], input[name="username"]`
	passwordSelector = `input[type="password"]`

	loginButtonSelectors = []struct {
		sel string
		by  chromedp.QueryOption
	}{
		{`//button[contains(., "Log in")]`, chromedp.BySearch},
		{`button[type="submit"]`, chromedp.ByQuery},
		{`button`, chromedp.ByQuery},
	}
)

// Login drives a headless browser through the console login form and
// harvests the bearer token emitted by the token endpoint together with
// the session cookie. The browser is torn down before Login returns,
// whatever the outcome.
func Login(ctx context.Context, baseURL, username, password string) (*Credentials, error) {
	logger := zerolog.Ctx(ctx)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		// Consoles in the field routinely run on self-signed certificates.
		chromedp.Flag("ignore-certificate-errors", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, loginTimeout)
	defer cancelRun()

	tokens := make(chan string, 1)
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Response.Status != http.StatusOK || !strings.Contains(resp.Response.URL, tokenPath) {
			return
		}
		requestID := resp.RequestID
		go func() {
			c := chromedp.FromContext(browserCtx)
			body, err := network.GetResponseBody(requestID).Do(cdp.WithExecutor(browserCtx, c.Target))
			if err != nil {
				logger.Debug().Err(err).Msg("failed to read token response body")
				return
			}
			var issued struct {
				AccessToken string `json:"access_token"`
			}
			if err := json.Unmarshal(body, &issued); err != nil || issued.AccessToken == "" {
				return
			}
			select {
			case tokens <- issued.AccessToken:
			default:
			}
		}()
	})

	logger.Info().Str("url", baseURL).Msg("starting headless browser login")

	var cookie string
	err := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(baseURL+"/login"),
		chromedp.WaitVisible(passwordSelector, chromedp.ByQuery),
		chromedp.SendKeys(usernameSelector, username, chromedp.ByQuery),
		chromedp.SendKeys(passwordSelector, password, chromedp.ByQuery),
		submitLogin(),
		waitForHome(baseURL),
		readSessionCookie(&cookie),
	)
	if err != nil {
		return nil, fmt.Errorf("login flow failed: %w", err)
	}

	// The token response body is fetched asynchronously off the network
	// event; give an in-flight read a moment to land.
	var token string
	select {
	case token = <-tokens:
	case <-time.After(2 * time.Second):
	}

	if token == "" || cookie == "" {
		return nil, ErrNoCredentials
	}

	logger.Info().Str("user", username).Msg("authentication credentials captured")
	return &Credentials{Token: token, Cookie: cookie}, nil
}

// submitLogin tries the button strategies in order; the first click that
// lands wins. Only the last failure is reported.
func submitLogin() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var lastErr error
		for _, btn := range loginButtonSelectors {
			attempt, cancel := context.WithTimeout(ctx, clickTimeout)
			err := chromedp.Click(btn.sel, btn.by).Do(attempt)
			cancel()
			if err == nil {
				return nil
			}
			lastErr = err
		}
		return fmt.Errorf("no login button matched: %w", lastErr)
	})
}

// waitForHome polls for the post-login URL. Some console versions land
// elsewhere after login, so running out the wait is not an error; the
// cookie check decides whether login actually succeeded.
func waitForHome(baseURL string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		deadline := time.Now().Add(postLoginWait)
		for time.Now().Before(deadline) {
			var loc string
			if err := chromedp.Location(&loc).Do(ctx); err != nil {
				return err
			}
			if strings.HasPrefix(loc, baseURL+"/home") {
				return nil
			}
			if err := chromedp.Sleep(500 * time.Millisecond).Do(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

func readSessionCookie(out *string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			if c.Name == sessionCookie {
				*out = c.Value
				return nil
			}
		}
		return nil
	})
}
