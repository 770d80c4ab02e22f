package middleware

import (
	"context"
	"time"

	"tango/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "エラーが発生しました。しばらくしてからもう一度お試しください。"
	msgPasswordAsk   = "こんにちは！パスワードを入力してください："
	msgNotAuthorized = "先にパスワードを入力してください"

	authTimeout = 5 * time.Second
)

// AuthMiddleware lets only authorized users through.
// Button presses from unknown users are answered with an alert instead of a chat message.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return reject(c, msgInternalError)
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reject(c, msgInternalError)
			}

			// If not authorized and not /start command, prompt for password
			if !authorized && c.Text() != "/start" {
				logger.Debug("Rejected unauthorized update", zap.Int64("user_id", userID))
				if c.Callback() != nil {
					return reject(c, msgNotAuthorized)
				}
				return c.Send(msgPasswordAsk)
			}

			// User is authorized or using /start, continue
			return next(c)
		}
	}
}

func reject(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
