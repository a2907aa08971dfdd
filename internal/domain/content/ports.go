package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/rarerevisit/backend/internal/domain/social"
)

// GenerationRequest describes a caption to generate
type GenerationRequest struct {
	Prompt      string
	Platform    social.Platform
	Tone        Tone
	ProductName string
}

// Generator produces caption text for a platform and tone
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// PublishRequest carries everything a platform adapter needs for one attempt
type PublishRequest struct {
	Item        *ContentItem
	Credentials map[string]string
}

// PublishResult is the platform's acknowledgement of a successful publish
type PublishResult struct {
	ExternalRef string
	Engagement  int64
}

// Publisher sends a content item to its platform
type Publisher interface {
	Platform() social.Platform
	Publish(ctx context.Context, req PublishRequest) (PublishResult, error)
}

// PublishError is a classified failure from a platform adapter
type PublishError struct {
	Cause   FailureCause
	Message string
	Err     error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish failed (%s): %s: %v", e.Cause, e.Message, e.Err)
	}
	return fmt.Sprintf("publish failed (%s): %s", e.Cause, e.Message)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// NewPublishError creates a classified publish error
func NewPublishError(cause FailureCause, message string, err error) *PublishError {
	return &PublishError{Cause: cause, Message: message, Err: err}
}

// ClassifyPublishError extracts the failure cause from an adapter error
// Unclassified errors map to FailureCauseUnknown
func ClassifyPublishError(err error) (FailureCause, string) {
	if err == nil {
		return FailureCauseUnknown, ""
	}
	var publishErr *PublishError
	if errors.As(err, &publishErr) {
		return publishErr.Cause, publishErr.Message
	}
	return FailureCauseUnknown, err.Error()
}
