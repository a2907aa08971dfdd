package publisher

import (
	"fmt"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/rarerevisit/backend/internal/infrastructure/config"
)

// Default API bases per platform. PublishConfig.BaseURL overrides all
// of them, which is how tests point every adapter at one stub server.
const (
	instagramAPIBase = "https://graph.facebook.com/v19.0"
	facebookAPIBase  = "https://graph.facebook.com/v19.0"
	pinterestAPIBase = "https://api.pinterest.com/v5"
	twitterAPIBase   = "https://api.twitter.com/2"
)

// NewInstagramPublisher creates the Instagram adapter
func NewInstagramPublisher(cfg config.PublishConfig) *HTTPPublisher {
	base := cfg.BaseURL
	if base == "" {
		base = instagramAPIBase
	}
	return newHTTPPublisher(social.PlatformInstagram, base, cfg.Timeout, buildInstagramRequest)
}

// NewFacebookPublisher creates the Facebook adapter
func NewFacebookPublisher(cfg config.PublishConfig) *HTTPPublisher {
	base := cfg.BaseURL
	if base == "" {
		base = facebookAPIBase
	}
	return newHTTPPublisher(social.PlatformFacebook, base, cfg.Timeout, buildFacebookRequest)
}

// NewPinterestPublisher creates the Pinterest adapter
func NewPinterestPublisher(cfg config.PublishConfig) *HTTPPublisher {
	base := cfg.BaseURL
	if base == "" {
		base = pinterestAPIBase
	}
	return newHTTPPublisher(social.PlatformPinterest, base, cfg.Timeout, buildPinterestRequest)
}

// NewTwitterPublisher creates the X (Twitter) adapter
func NewTwitterPublisher(cfg config.PublishConfig) *HTTPPublisher {
	base := cfg.BaseURL
	if base == "" {
		base = twitterAPIBase
	}
	return newHTTPPublisher(social.PlatformTwitter, base, cfg.Timeout, buildTwitterRequest)
}

// NewDefaultRegistry creates a registry with every platform adapter registered
func NewDefaultRegistry(cfg config.PublishConfig) *Registry {
	registry := NewRegistry()
	registry.Register(NewInstagramPublisher(cfg))
	registry.Register(NewFacebookPublisher(cfg))
	registry.Register(NewPinterestPublisher(cfg))
	registry.Register(NewTwitterPublisher(cfg))
	return registry
}

func requireCred(creds map[string]string, platform social.Platform, field string) (string, error) {
	value, ok := creds[field]
	if !ok || value == "" {
		return "", content.NewPublishError(content.FailureCauseAuth,
			fmt.Sprintf("%s credentials missing %s", platform, field), nil)
	}
	return value, nil
}

func buildInstagramRequest(req content.PublishRequest) (platformRequest, error) {
	token, err := requireCred(req.Credentials, social.PlatformInstagram, "access_token")
	if err != nil {
		return platformRequest{}, err
	}
	accountID, err := requireCred(req.Credentials, social.PlatformInstagram, "business_account_id")
	if err != nil {
		return platformRequest{}, err
	}

	return platformRequest{
		Path: fmt.Sprintf("/%s/media", accountID),
		Payload: map[string]interface{}{
			"caption":      req.Item.Body,
			"access_token": token,
		},
	}, nil
}

func buildFacebookRequest(req content.PublishRequest) (platformRequest, error) {
	token, err := requireCred(req.Credentials, social.PlatformFacebook, "access_token")
	if err != nil {
		return platformRequest{}, err
	}
	pageID, err := requireCred(req.Credentials, social.PlatformFacebook, "page_id")
	if err != nil {
		return platformRequest{}, err
	}

	return platformRequest{
		Path: fmt.Sprintf("/%s/feed", pageID),
		Payload: map[string]interface{}{
			"message":      req.Item.Body,
			"access_token": token,
		},
	}, nil
}

func buildPinterestRequest(req content.PublishRequest) (platformRequest, error) {
	token, err := requireCred(req.Credentials, social.PlatformPinterest, "access_token")
	if err != nil {
		return platformRequest{}, err
	}
	boardID, err := requireCred(req.Credentials, social.PlatformPinterest, "board_id")
	if err != nil {
		return platformRequest{}, err
	}

	return platformRequest{
		Path: "/pins",
		Payload: map[string]interface{}{
			"board_id":    boardID,
			"description": req.Item.Body,
		},
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
	}, nil
}

func buildTwitterRequest(req content.PublishRequest) (platformRequest, error) {
	token, err := requireCred(req.Credentials, social.PlatformTwitter, "access_token")
	if err != nil {
		return platformRequest{}, err
	}
	if _, err := requireCred(req.Credentials, social.PlatformTwitter, "api_key"); err != nil {
		return platformRequest{}, err
	}

	return platformRequest{
		Path: "/tweets",
		Payload: map[string]interface{}{
			"text": req.Item.Body,
		},
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
	}, nil
}
