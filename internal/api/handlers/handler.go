package handlers

import (
	"fmt"
	"strconv"

	errprocess "qna_board_service/pkg/err"
	"qna_board_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check board service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "board service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("board service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	logger.Log.SetDebugMode(status)
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}

// ErrorResponse error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler fiber error handler, render AppError kinds as {"error": msg}
func ErrorHandler(c *fiber.Ctx, err error) error {
	// fiber 自身的錯誤 (404 route, body too large ...)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
	}

	if _, ok := errprocess.As(err); !ok {
		logger.Log.Error("unhandled error",
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
			zap.Error(err))
	}
	return c.Status(errprocess.Status(err)).JSON(ErrorResponse{Error: errprocess.PublicMessage(err)})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// queryInt64 parse optional int query, def when absent
func queryInt64(c *fiber.Ctx, key string, def int64) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errprocess.BadRequest(key + " must be an integer")
	}
	return v, nil
}
