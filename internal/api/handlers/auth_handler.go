package handlers

import (
	memberapp "qna_board_service/internal/member/app"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"
	"qna_board_service/pkg/middlewares"
	t_token "qna_board_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler identity token handler
type AuthHandler struct {
	provider t_token.Provider
	members  memberapp.MemberUseCase
}

// NewAuthHandler create AuthHandler
func NewAuthHandler(provider t_token.Provider, members memberapp.MemberUseCase) *AuthHandler {
	return &AuthHandler{provider: provider, members: members}
}

// TokenReq dev token request
type TokenReq struct {
	UID string `json:"uid"`
}

// TokenResponse issued token
type TokenResponse struct {
	Token string `json:"token"`
}

// Token issue a token for a registered member, local only
// @Summary Issue dev token
// @Description Issue an identity token for a registered member (dev issuer only)
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body TokenReq true "member uid"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/auth.token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.BadRequest("invalid request")
	}

	member, err := h.members.FindByID(c.UserContext(), req.UID)
	if err != nil {
		return err
	}

	tok, err := h.provider.Issue(c.UserContext(), t_token.Identity{
		UID:         member.UID,
		Email:       member.Email,
		DisplayName: member.DisplayName,
		PhotoURL:    member.PhotoURL,
	})
	if err != nil {
		return errprocess.Internal("issue token", err)
	}

	logger.Log.Debug("dev token issued", zap.String("uid", member.UID))
	return c.JSON(TokenResponse{Token: tok})
}

// SignOut revoke the current token
// @Summary Sign out
// @Tags Auth
// @Security ApiKeyAuth
// @Success 200
// @Failure 401 {object} ErrorResponse
// @Router /api/auth.signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	tok, _ := c.Locals(middlewares.TokenRaw).(string)
	if err := h.provider.Revoke(c.UserContext(), tok); err != nil {
		return errprocess.Internal("revoke token", err)
	}

	c.ClearCookie(middlewares.CookieToken)
	return c.SendStatus(fiber.StatusOK)
}
