package eupathdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yumyai/eupathtable/internal/util"
	"github.com/yumyai/eupathtable/logger"
)

const (
	// DefaultTimeout bounds one GET question. Some of the big genomes
	// (T. gondii strains especially) really do take minutes.
	DefaultTimeout = 600 * time.Second

	// PostTimeout bounds the POST service path. POST queries are small
	// administrative ones, not part of the bulk per-organism loop.
	PostTimeout = 10 * time.Second
)

// Client issues webservice queries against EuPathDB-family sites.
type Client struct {
	http *resty.Client

	// BaseURL, when set, replaces the derived "http://<provider>.org"
	// origin. Used for mirrors and for tests against a local server.
	BaseURL string
}

func NewClient() *Client {
	return &Client{http: resty.New()}
}

func (c *Client) origin(provider string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://%s.org", provider)
}

// Query runs one GET question against a provider's webservice and parses
// the JSON answer. Connection failures and timeouts are not returned as
// errors: they are logged and degrade to the canonical empty response, so
// a caller looping over 172 organisms survives one site being down.
//
// Only format "json" is supported.
func (c *Client) Query(ctx context.Context, provider, organism string, params map[string]string, endpoint, format string, timeout time.Duration) (*Response, error) {
	if format != "json" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	values := url.Values{}
	values.Set("organism", organism)
	for k, v := range params {
		values.Set(k, v)
	}
	fullURL := fmt.Sprintf("%s/webservices/%s.%s?%s",
		c.origin(provider), endpoint, format, values.Encode())

	logger.Info("querying webservice", zap.String("url", util.TruncateString(fullURL, 200, 160)))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.http.R().SetContext(ctx).Get(fullURL)
	if err != nil {
		logger.Warn("webservice unreachable, treating as empty result",
			zap.String("provider", provider),
			zap.String("organism", organism),
			zap.Error(err))
		return EmptyResponse(), nil
	}
	if res.StatusCode() != 200 {
		logger.Warn("webservice returned non-200, treating as empty result",
			zap.String("provider", provider),
			zap.String("organism", organism),
			zap.Int("status", res.StatusCode()))
		return EmptyResponse(), nil
	}

	parsed := &Response{}
	if err := json.Unmarshal(res.Body(), parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", provider, err)
	}
	return parsed, nil
}

// PostAnswer submits a JSON body to a provider's "<prefix>/service/answer"
// endpoint and returns the parsed body as-is. Unlike Query there is no
// empty-result fallback: failures propagate.
func (c *Client) PostAnswer(ctx context.Context, provider string, body any) (map[string]any, error) {
	prefix, err := ResolvePrefix(provider)
	if err != nil {
		return nil, err
	}
	fullURL := fmt.Sprintf("%s/%s/service/answer", c.origin(provider), prefix)

	logger.Info("posting to answer service", zap.String("url", util.TruncateString(fullURL, 200, 160)))

	ctx, cancel := context.WithTimeout(ctx, PostTimeout)
	defer cancel()

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(fullURL)
	if err != nil {
		return nil, fmt.Errorf("post %s answer service: %w", provider, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("post %s answer service: status %d", provider, res.StatusCode())
	}

	var parsed map[string]any
	if err := json.Unmarshal(res.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode %s answer: %w", provider, err)
	}
	return parsed, nil
}
