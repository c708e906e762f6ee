package handlers

import (
	"qna_board_service/internal/member/app"
	"qna_board_service/internal/member/domain"
	errprocess "qna_board_service/pkg/err"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler member directory http handler
type MemberHandler struct {
	usecase app.MemberUseCase
}

// NewMemberHandler create MemberHandler
func NewMemberHandler(usecase app.MemberUseCase) *MemberHandler {
	return &MemberHandler{usecase: usecase}
}

// AddResponse created resource id
type AddResponse struct {
	Result bool   `json:"result"`
	ID     string `json:"id"`
}

// Add register member
// @Summary Add member
// @Description Register a member from provider identity, no-op when it already exists
// @Tags Members
// @Accept json
// @Produce json
// @Param request body domain.RegisterReq true "member identity"
// @Success 201 {object} AddResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/members.add [post]
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	var req domain.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.BadRequest("invalid request")
	}

	res, err := h.usecase.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(AddResponse{Result: true, ID: res.MemberID})
}

// FindByScreenName member profile by screen name
// @Summary Find member
// @Description Find member by screen name
// @Tags Members
// @Produce json
// @Param screenName path string true "screen name"
// @Success 200 {object} domain.Member
// @Failure 404 {object} ErrorResponse
// @Router /api/users.info/{screenName} [get]
func (h *MemberHandler) FindByScreenName(c *fiber.Ctx) error {
	member, err := h.usecase.FindByScreenName(c.UserContext(), c.Params("screenName"))
	if err != nil {
		return err
	}
	if member == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "user not found"})
	}
	return c.JSON(member)
}
