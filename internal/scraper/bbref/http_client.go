package bbref

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// Client fetches pages from basketball-reference.com. Plain HTTP is tried
// first; when the site refuses the request (bot detection answers 403/429),
// the page is rendered in headless Chrome instead.
type Client struct {
	httpClient     *http.Client
	userAgent      string
	chromeFallback bool
}

// NewClient creates a page fetcher. timeout bounds each plain HTTP request;
// chromeFallback enables the headless-Chrome retry path.
func NewClient(timeout time.Duration, userAgent string, chromeFallback bool) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		userAgent:      userAgent,
		chromeFallback: chromeFallback,
	}
}

// FetchPage returns the HTML of a page. A refused request falls back to
// headless Chrome when enabled; any other failure is returned to the caller,
// who treats it as "no data for this unit".
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		if c.chromeFallback {
			slog.Warn("request refused, retrying with headless browser", "url", url, "status", resp.StatusCode)
			return c.fetchRendered(ctx, url)
		}
		return "", fmt.Errorf("request refused with status %d: %s", resp.StatusCode, url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// fetchRendered loads the page in headless Chrome and returns the rendered
// document.
func (c *Client) fetchRendered(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(c.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	var html string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("headless fetch of %s: %w", url, err)
	}
	return html, nil
}
