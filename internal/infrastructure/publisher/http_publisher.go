package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// platformRequest is what a platform-specific builder produces for one attempt
type platformRequest struct {
	Path    string
	Payload map[string]interface{}
	Headers map[string]string
}

// requestBuilder maps a publish request onto the platform's wire format
type requestBuilder func(req content.PublishRequest) (platformRequest, error)

// publishAck is the common shape of a platform's publish acknowledgement.
// Engagement is optional; most platforms report it only later via insights.
type publishAck struct {
	ID         string `json:"id"`
	Engagement int64  `json:"engagement"`
}

// HTTPPublisher posts content to a platform API over HTTP
type HTTPPublisher struct {
	platform social.Platform
	baseURL  string
	client   *http.Client
	build    requestBuilder
}

func newHTTPPublisher(platform social.Platform, baseURL string, timeout time.Duration, build requestBuilder) *HTTPPublisher {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &HTTPPublisher{
		platform: platform,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		build:    build,
	}
}

// Platform returns the platform this publisher serves
func (p *HTTPPublisher) Platform() social.Platform {
	return p.platform
}

// Publish sends the item to the platform and returns its acknowledgement
func (p *HTTPPublisher) Publish(ctx context.Context, req content.PublishRequest) (content.PublishResult, error) {
	wire, err := p.build(req)
	if err != nil {
		return content.PublishResult{}, err
	}

	payload, err := json.Marshal(wire.Payload)
	if err != nil {
		return content.PublishResult{}, fmt.Errorf("publisher: marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+wire.Path, bytes.NewReader(payload))
	if err != nil {
		return content.PublishResult{}, fmt.Errorf("publisher: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for name, value := range wire.Headers {
		httpReq.Header.Set(name, value)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return content.PublishResult{}, content.NewPublishError(content.FailureCauseNetwork,
			fmt.Sprintf("%s unreachable", p.platform), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return content.PublishResult{}, p.classifyStatus(resp)
	}

	var ack publishAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return content.PublishResult{}, content.NewPublishError(content.FailureCauseUnknown,
			fmt.Sprintf("%s returned an unreadable acknowledgement", p.platform), err)
	}
	if ack.ID == "" {
		return content.PublishResult{}, content.NewPublishError(content.FailureCauseUnknown,
			fmt.Sprintf("%s acknowledged without a post id", p.platform), nil)
	}

	return content.PublishResult{
		ExternalRef: ack.ID,
		Engagement:  ack.Engagement,
	}, nil
}

// classifyStatus turns a non-2xx platform response into a classified failure
func (p *HTTPPublisher) classifyStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(raw))

	cause := content.FailureCauseUnknown
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		cause = content.FailureCauseAuth
	case http.StatusTooManyRequests:
		cause = content.FailureCauseRateLimit
	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			cause = content.FailureCauseNetwork
		}
	}

	message := fmt.Sprintf("%s returned %s", p.platform, resp.Status)
	if detail != "" {
		message += ": " + detail
	}
	return content.NewPublishError(cause, message, nil)
}

// Ensure HTTPPublisher implements Publisher
var _ content.Publisher = (*HTTPPublisher)(nil)
