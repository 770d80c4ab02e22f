package handler

import (
	"tango/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "エラーが発生しました。しばらくしてからもう一度お試しください。"
	msgPasswordAsk   = "こんにちは！パスワードを入力してください："
	msgWrongPassword = "パスワードが違います"
	msgAuthorized    = "✅ ログインしました！"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	ctx, cancel := h.requestContext()
	defer cancel()

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	if !authorized {
		// Request password
		h.SetState(userID, &ChatState{State: domain.StateWaitingPassword})
		return c.Send(msgPasswordAsk)
	}

	// Show main menu
	h.ResetState(userID)
	return c.Send(renderMenu(h.statsService.Summary(ctx)), mainMenuMarkup())
}

// handleMainMenu returns to the main menu from any screen, dropping the current session
func (h *Handler) handleMainMenu(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	h.ResetState(c.Sender().ID)
	return h.show(c, renderMenu(h.statsService.Summary(ctx)), mainMenuMarkup())
}
