package handlers

import (
	"qna_board_service/internal/thumbnail/app"
	"qna_board_service/internal/thumbnail/domain"

	"github.com/gofiber/fiber/v2"
)

// ThumbnailHandler card screenshot handler
type ThumbnailHandler struct {
	usecase app.ThumbnailUseCase
}

// NewThumbnailHandler create ThumbnailHandler
func NewThumbnailHandler(usecase app.ThumbnailUseCase) *ThumbnailHandler {
	return &ThumbnailHandler{usecase: usecase}
}

// Get card jpeg
// @Summary Card thumbnail
// @Description 1200x675 jpeg screenshot of a card page
// @Tags Thumbnail
// @Produce jpeg
// @Param url query string true "card url"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/thumbnail [get]
func (h *ThumbnailHandler) Get(c *fiber.Ctx) error {
	img, err := h.usecase.Get(c.UserContext(), c.Query("url"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, domain.CacheControl)
	c.Set(fiber.HeaderContentType, domain.ContentType)
	return c.Send(img)
}
