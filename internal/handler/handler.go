package handler

import (
	"context"
	"io"
	"sync"
	"time"

	"tango/internal/domain"
	"tango/internal/middleware"
	"tango/internal/service"
	"tango/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 15 * time.Second

// ChatState is the in-memory study state of one user.
// It is only touched while the user's lock is held.
type ChatState struct {
	State      domain.UserState
	Grid       domain.Grid
	Header     bool
	EnglishCol int
	Quiz       *session.Quiz
	Deck       *session.Deck
}

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	authService   *service.AuthService
	importService *service.ImportService
	studyService  *service.StudyService
	statsService  *service.StatsService
	logger        *zap.Logger

	// download fetches an uploaded file; bot.File outside tests
	download func(file *tele.File) (io.ReadCloser, error)

	// User states (in-memory state machine)
	states   map[int64]*ChatState
	stateMux sync.RWMutex

	// Per-user locks serializing update processing
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex

	routes map[string]tele.HandlerFunc
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	importService *service.ImportService,
	studyService *service.StudyService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:           bot,
		authService:   authService,
		importService: importService,
		studyService:  studyService,
		statsService:  statsService,
		logger:        logger,
		states:        make(map[int64]*ChatState),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
	if bot != nil {
		h.download = bot.File
	}
	h.routes = h.buildRoutes()
	return h
}

func (h *Handler) buildRoutes() map[string]tele.HandlerFunc {
	auth := middleware.AuthMiddleware(h.authService, h.logger)
	routes := map[string]tele.HandlerFunc{
		btnMainMenu.Unique:            h.handleMainMenu,
		btnCancel.Unique:              h.handleCancel,
		btnImport.Unique:              h.handleImportStart,
		btnColEnglish.Unique:          h.handleEnglishColumn,
		btnColJapanese.Unique:         h.handleJapaneseColumn,
		btnQuiz.Unique:                h.handleQuizStart,
		btnQuizNext.Unique:            h.handleQuizNext,
		btnQuizRestart.Unique:         h.handleQuizRestart,
		btnQuizRetry.Unique:           h.handleQuizRetry,
		btnCards.Unique:               h.handleCardsStart,
		btnCardFlip.Unique:            h.handleCardFlip,
		btnCardPrev.Unique:            h.handleCardPrev,
		btnCardNext.Unique:            h.handleCardNext,
		btnCardKnown.Unique:           h.handleCardKnown,
		btnCardUnknown.Unique:         h.handleCardUnknown,
		btnCardsRestart.Unique:        h.handleCardsRestart,
		btnCardsRestartUnknown.Unique: h.handleCardsRestartUnknown,
	}
	for unique, route := range routes {
		routes[unique] = auth(h.serialized(route))
	}
	return routes
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.serialized(h.handleStart))

	// Text messages: password entry and quiz answers
	h.bot.Handle(tele.OnText, h.serialized(h.handleText))

	// Word list uploads
	h.bot.Handle(tele.OnDocument, auth(h.serialized(h.handleDocument)))

	// Callback queries (inline buttons)
	for unique, route := range h.routes {
		h.bot.Handle("\f"+unique, route)
	}

	// Generic callback handler for data that did not match a button
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *ChatState {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &ChatState{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *ChatState) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &ChatState{State: domain.StateIdle})
}

// userLock returns the lock of one user, creating it on first use
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// serialized processes updates of the same user one at a time
func (h *Handler) serialized(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		lock := h.userLock(c.Sender().ID)
		lock.Lock()
		defer lock.Unlock()
		return next(c)
	}
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "📝 クイズ",
	}
	btnCards = tele.Btn{
		Unique: "cards",
		Text:   "🃏 フラッシュカード",
	}
	btnImport = tele.Btn{
		Unique: "import",
		Text:   "📥 単語をインポート",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 メインメニュー",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ キャンセル",
	}

	btnColEnglish  = tele.Btn{Unique: "col_en"}
	btnColJapanese = tele.Btn{Unique: "col_ja"}

	btnQuizNext = tele.Btn{
		Unique: "quiz_next",
		Text:   "➡️ 次へ",
	}
	btnQuizRestart = tele.Btn{
		Unique: "quiz_restart",
		Text:   "🔄 もう一度",
	}
	btnQuizRetry = tele.Btn{
		Unique: "quiz_retry",
		Text:   "🔁 間違えた問題だけ",
	}

	btnCardFlip = tele.Btn{
		Unique: "card_flip",
		Text:   "🔃 めくる",
	}
	btnCardPrev = tele.Btn{
		Unique: "card_prev",
		Text:   "⬅️ 前へ",
	}
	btnCardNext = tele.Btn{
		Unique: "card_next",
		Text:   "➡️ 次へ",
	}
	btnCardKnown = tele.Btn{
		Unique: "card_known",
		Text:   "⭕ 覚えた",
	}
	btnCardUnknown = tele.Btn{
		Unique: "card_unknown",
		Text:   "❌ 覚えていない",
	}
	btnCardsRestart = tele.Btn{
		Unique: "cards_restart",
		Text:   "🔄 最初から",
	}
	btnCardsRestartUnknown = tele.Btn{
		Unique: "cards_restart_unknown",
		Text:   "🔁 覚えていないカードだけ",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnQuiz),
		menu.Row(btnCards),
		menu.Row(btnImport),
	)
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMainMenu))
	return menu
}
