package middleware

import (
	"errors"
	"testing"

	"tango/internal/service"
	"tango/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		ctx            *testutil.FakeContext
		authorized     bool
		authErr        error
		expectNext     bool
		expectSent     string
		expectResponse string
	}{
		{
			name:       "authorized message passes",
			ctx:        testutil.NewTextContext(1, "hello"),
			authorized: true,
			expectNext: true,
		},
		{
			name:       "authorized callback passes",
			ctx:        testutil.NewCallbackContext(1, "quiz", ""),
			authorized: true,
			expectNext: true,
		},
		{
			name:       "start command passes unauthorized",
			ctx:        testutil.NewTextContext(2, "/start"),
			expectNext: true,
		},
		{
			name:       "unauthorized document asks for password",
			ctx:        testutil.NewDocumentContext(3, "words.tsv", ""),
			expectSent: msgPasswordAsk,
		},
		{
			name:           "unauthorized callback gets alert",
			ctx:            testutil.NewCallbackContext(4, "cards", ""),
			expectResponse: msgNotAuthorized,
		},
		{
			name:           "repository failure on callback",
			ctx:            testutil.NewCallbackContext(5, "quiz", ""),
			authErr:        errors.New("connection refused"),
			expectResponse: msgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := tt.ctx.Sender().ID
			repo := new(testutil.MockUserRepository)
			repo.On("EnsureUserExists", mock.Anything, userID).Return(nil)
			repo.On("IsAuthorized", mock.Anything, userID).Return(tt.authorized, tt.authErr)

			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}

			mw := AuthMiddleware(service.NewAuthService(repo, "secret"), testutil.NewTestLogger())
			require.NoError(t, mw(next)(tt.ctx))

			assert.Equal(t, tt.expectNext, called)
			if tt.expectSent != "" {
				assert.Equal(t, []string{tt.expectSent}, tt.ctx.Sent)
			}
			if tt.expectResponse != "" {
				require.Len(t, tt.ctx.Responses, 1)
				assert.Equal(t, tt.expectResponse, tt.ctx.Responses[0].Text)
				assert.True(t, tt.ctx.Responses[0].ShowAlert)
				assert.Empty(t, tt.ctx.Sent)
			}
			repo.AssertExpectations(t)
		})
	}
}
