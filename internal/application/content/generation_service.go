package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// GenerationService produces caption text through a Generator adapter
type GenerationService struct {
	generator content.Generator
	itemRepo  content.ItemRepository
	timeout   time.Duration
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(generator content.Generator, itemRepo content.ItemRepository, timeout time.Duration) *GenerationService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GenerationService{
		generator: generator,
		itemRepo:  itemRepo,
		timeout:   timeout,
	}
}

// Generate produces caption text without persisting anything
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	text, platform, tone, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &GenerateResponse{
		Content:     text,
		Platform:    platform.String(),
		Tone:        string(tone),
		GeneratedAt: time.Now(),
	}, nil
}

// GenerateDraft produces caption text and stores it as a draft item
func (s *GenerationService) GenerateDraft(ctx context.Context, req GenerateRequest) (*ItemResponse, error) {
	text, platform, tone, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	item, err := content.NewContentItem(platform, text, tone, nil)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

func (s *GenerationService) generate(ctx context.Context, req GenerateRequest) (string, social.Platform, content.Tone, error) {
	platform := social.Platform(req.Platform)
	tone := content.Tone(req.Tone)

	// Validate before spending a generator call
	if strings.TrimSpace(req.Prompt) == "" {
		return "", "", "", shared.NewDomainError("INVALID_PROMPT", "Prompt cannot be empty")
	}
	if !platform.IsValid() {
		return "", "", "", shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+req.Platform)
	}
	if !tone.IsValid() {
		return "", "", "", shared.NewDomainError("INVALID_TONE", "Unknown tone: "+req.Tone)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(genCtx, content.GenerationRequest{
		Prompt:      req.Prompt,
		Platform:    platform,
		Tone:        tone,
		ProductName: req.ProductName,
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return "", "", "", err
		}
		return "", "", "", shared.NewDomainError("GENERATION_FAILED", "Content generation failed: "+err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return "", "", "", shared.NewDomainError("GENERATION_FAILED", "Generator returned empty content")
	}

	return text, platform, tone, nil
}
