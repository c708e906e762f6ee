package handlers

import (
	"qna_board_service/internal/board/app"
	"qna_board_service/internal/board/domain"
	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"
	"qna_board_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MessageHandler message ledger http handler
type MessageHandler struct {
	usecase         app.BoardUseCase
	defaultPageSize int64
}

// NewMessageHandler create MessageHandler
func NewMessageHandler(usecase app.BoardUseCase, defaultPageSize int64) *MessageHandler {
	return &MessageHandler{usecase: usecase, defaultPageSize: defaultPageSize}
}

// ReplyReq reply body
type ReplyReq struct {
	MemberID  string `json:"uid"`
	MessageID string `json:"messageId"`
	Reply     string `json:"reply"`
}

// DenyReq visibility body, deny 必填
type DenyReq struct {
	MemberID  string `json:"uid"`
	MessageID string `json:"messageId"`
	Deny      *bool  `json:"deny"`
}

// Post post anonymous message
// @Summary Post message
// @Description Post a message to a member's board
// @Tags Messages
// @Accept json
// @Param request body domain.PostReq true "message"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Router /api/messages.add [post]
func (h *MessageHandler) Post(c *fiber.Ctx) error {
	var req domain.PostReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.BadRequest("invalid request")
	}

	if _, err := h.usecase.Post(c.UserContext(), req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

// List page of messages, newest first
// @Summary List messages
// @Description List a board by uid or screenName
// @Tags Messages
// @Produce json
// @Param uid query string false "member uid"
// @Param screenName query string false "member screen name"
// @Param page query int false "page, default 1"
// @Param size query int false "size, default 10"
// @Success 200 {object} domain.PageView
// @Failure 400 {object} ErrorResponse
// @Router /api/messages.list [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	page, err := queryInt64(c, "page", 1)
	if err != nil {
		return err
	}
	size, err := queryInt64(c, "size", h.defaultPageSize)
	if err != nil {
		return err
	}

	var res *domain.Page
	uid, screenName := c.Query("uid"), c.Query("screenName")
	switch {
	case uid != "":
		res, err = h.usecase.ListPage(c.UserContext(), uid, page, size)
	case screenName != "":
		res, err = h.usecase.ListPageByScreenName(c.UserContext(), screenName, page, size)
	default:
		return errprocess.BadRequest("uid is required")
	}
	if err != nil {
		return err
	}
	return c.JSON(res.View())
}

// Get single message
// @Summary Get message
// @Tags Messages
// @Produce json
// @Param uid query string true "member uid"
// @Param messageId query string true "message id"
// @Success 200 {object} domain.MessageView
// @Failure 400 {object} ErrorResponse
// @Router /api/messages.info [get]
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	msg, err := h.usecase.Get(c.UserContext(), c.Query("uid"), c.Query("messageId"))
	if err != nil {
		return err
	}
	return c.JSON(msg.View())
}

// Reply owner reply, once per message
// @Summary Reply message
// @Tags Messages
// @Accept json
// @Security ApiKeyAuth
// @Param request body ReplyReq true "reply"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/messages.add.reply [post]
func (h *MessageHandler) Reply(c *fiber.Ctx) error {
	var req ReplyReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.BadRequest("invalid request")
	}
	if err := checkOwner(c, req.MemberID); err != nil {
		return err
	}

	if _, err := h.usecase.Reply(c.UserContext(), req.MemberID, req.MessageID, req.Reply); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Deny owner hide / unhide a message
// @Summary Set message visibility
// @Tags Messages
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body DenyReq true "visibility"
// @Success 200 {object} domain.MessageView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/messages.deny [post]
func (h *MessageHandler) Deny(c *fiber.Ctx) error {
	var req DenyReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.BadRequest("invalid request")
	}
	if err := checkOwner(c, req.MemberID); err != nil {
		return err
	}
	if req.Deny == nil {
		return errprocess.BadRequest("deny is required")
	}

	msg, err := h.usecase.SetVisibility(c.UserContext(), req.MemberID, req.MessageID, *req.Deny)
	if err != nil {
		return err
	}
	return c.JSON(msg.View())
}

// checkOwner uid 必填且需與 token 相同
func checkOwner(c *fiber.Ctx, uid string) error {
	if uid == "" {
		return errprocess.BadRequest("uid is required")
	}
	if !middlewares.IsOwner(c, uid) {
		logger.Log.Debug("owner mismatch", zap.String("uid", uid), zap.String("token_uid", middlewares.MemberID(c)))
		return errprocess.Unauthorized("not allowed to modify this board")
	}
	return nil
}
