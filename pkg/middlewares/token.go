package middlewares

import (
	"qna_board_service/pkg/logger"
	t_token "qna_board_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// HeaderToken token header name, raw or "Bearer <token>"
	HeaderToken = fiber.HeaderAuthorization

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
	// TokenRaw verified token string, set c.locals name
	TokenRaw = "token"
)

// IdentityMiddleware verify the identity token from the Authorization header or auth_token cookie
func IdentityMiddleware(provider t_token.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := t_token.StripBearer(c.Get(HeaderToken))

		// header 沒有則從 Cookie 取得
		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		claims, err := provider.Verify(c.UserContext(), tokenStr)
		if err != nil {
			logger.Log.Debug("identity verify failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(TokenMemberID, claims.MemberID)
		c.Locals(TokenRaw, tokenStr)
		return c.Next()
	}
}

// MemberID uid set by IdentityMiddleware, empty when absent
func MemberID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenMemberID).(string)
	return id
}

// IsOwner report whether the verified token belongs to uid
func IsOwner(c *fiber.Ctx, uid string) bool {
	id := MemberID(c)
	return id != "" && id == uid
}
