package handler

import (
	"strings"

	"tango/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalError)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send(msgWrongPassword)
		}

		if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(msgInternalError)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send(msgAuthorized+"\n\n"+renderMenu(h.statsService.Summary(ctx)), mainMenuMarkup())
	}

	// User is authorized, handle based on state
	state := h.GetState(userID)

	switch state.State {
	case domain.StateQuiz:
		// Answers are graded untrimmed; grading normalizes them itself
		return h.submitAnswer(c, state, c.Text())

	case domain.StateImportFile:
		return c.Send(msgImportAsk, cancelMarkup())

	case domain.StateImportEnglish, domain.StateImportJapanese:
		return c.Send(msgPickColumn)

	default:
		return c.Send(renderMenu(h.statsService.Summary(ctx)), mainMenuMarkup())
	}
}
