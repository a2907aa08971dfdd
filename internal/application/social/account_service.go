package social

import (
	"context"
	"errors"

	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// AccountService manages the platform connection registry
type AccountService struct {
	accountRepo social.AccountRepository
	eventBus    shared.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo social.AccountRepository, eventBus shared.EventPublisher) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		eventBus:    eventBus,
	}
}

// EnsureAccounts seeds one disconnected account per supported platform
// Existing accounts are left untouched; safe to call on every startup
func (s *AccountService) EnsureAccounts(ctx context.Context) error {
	for _, platform := range social.AllPlatforms() {
		_, err := s.accountRepo.FindByPlatform(ctx, platform)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		account, err := social.NewSocialAccount(platform)
		if err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
	}
	return nil
}

// List returns every account in canonical platform order
func (s *AccountService) List(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses, nil
}

// Connect stores credentials for a platform and marks it connected
func (s *AccountService) Connect(ctx context.Context, platform social.Platform, req ConnectAccountRequest) (*AccountResponse, error) {
	account, err := s.findAccount(ctx, platform)
	if err != nil {
		return nil, err
	}

	if err := account.Connect(req.Credentials); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, account)

	response := ToAccountResponse(account)
	return &response, nil
}

// Disconnect clears credentials for a platform
func (s *AccountService) Disconnect(ctx context.Context, platform social.Platform) (*AccountResponse, error) {
	account, err := s.findAccount(ctx, platform)
	if err != nil {
		return nil, err
	}

	account.Disconnect()

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, account)

	response := ToAccountResponse(account)
	return &response, nil
}

func (s *AccountService) findAccount(ctx context.Context, platform social.Platform) (*social.SocialAccount, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+platform.String())
	}
	return s.accountRepo.FindByPlatform(ctx, platform)
}

func (s *AccountService) publishEvents(ctx context.Context, account *social.SocialAccount) {
	if s.eventBus == nil {
		return
	}
	events := account.GetDomainEvents()
	account.ClearDomainEvents()
	if len(events) > 0 {
		// Event delivery is best-effort; the state change is already persisted
		_ = s.eventBus.Publish(ctx, events...)
	}
}
