package handler

import (
	"github.com/gin-gonic/gin"

	socialapp "github.com/rarerevisit/backend/internal/application/social"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/rarerevisit/backend/internal/interfaces/http/dto"
)

// SocialAccountHandler handles the platform connection registry endpoints
type SocialAccountHandler struct {
	BaseHandler
	accountService *socialapp.AccountService
}

// NewSocialAccountHandler creates a new SocialAccountHandler
func NewSocialAccountHandler(accountService *socialapp.AccountService) *SocialAccountHandler {
	return &SocialAccountHandler{
		accountService: accountService,
	}
}

// List godoc
// @Summary      List social accounts
// @Description  List every supported platform account in canonical order
// @Tags         social
// @Produce      json
// @Success      200 {object} dto.Response{data=[]socialapp.AccountResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/accounts [get]
func (h *SocialAccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, accounts)
}

// Connect godoc
// @Summary      Connect a platform
// @Description  Store credentials for a platform and mark it connected
// @Tags         social
// @Accept       json
// @Produce      json
// @Param        platform path string true "Platform name"
// @Param        request body socialapp.ConnectAccountRequest true "Platform credentials"
// @Success      200 {object} dto.Response{data=socialapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/accounts/{platform}/connect [post]
func (h *SocialAccountHandler) Connect(c *gin.Context) {
	platform, ok := h.platformParam(c)
	if !ok {
		return
	}

	var req socialapp.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.Connect(c.Request.Context(), platform, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// Disconnect godoc
// @Summary      Disconnect a platform
// @Description  Mark a platform disconnected and discard its stored credentials
// @Tags         social
// @Produce      json
// @Param        platform path string true "Platform name"
// @Success      200 {object} dto.Response{data=socialapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /social/accounts/{platform}/disconnect [post]
func (h *SocialAccountHandler) Disconnect(c *gin.Context) {
	platform, ok := h.platformParam(c)
	if !ok {
		return
	}

	account, err := h.accountService.Disconnect(c.Request.Context(), platform)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// platformParam parses and validates the platform path parameter
func (h *SocialAccountHandler) platformParam(c *gin.Context) (social.Platform, bool) {
	platform := social.Platform(c.Param("platform"))
	if !platform.IsValid() {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation), dto.ErrCodeValidation,
			"Unsupported platform: "+platform.String())
		return "", false
	}
	return platform, true
}
