package handler

import (
	"errors"
	"strconv"
	"strings"

	"tango/internal/domain"
	"tango/internal/tabular"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const maxImportSize = 5 << 20

// captions that mark an upload as having no header row
var noHeaderCaptions = []string{"noheader", "ヘッダーなし"}

// handleImportStart asks for a word list file
func (h *Handler) handleImportStart(c tele.Context) error {
	h.SetState(c.Sender().ID, &ChatState{State: domain.StateImportFile})
	return h.show(c, msgImportAsk, cancelMarkup())
}

// handleDocument parses an uploaded word list and asks for the english column
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	if doc.FileSize > maxImportSize {
		return c.Send(msgTooLarge, cancelMarkup())
	}

	reader, err := h.download(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download document",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("file_name", doc.FileName),
		)
		return c.Send(msgUnreadable, cancelMarkup())
	}
	defer reader.Close()

	grid, err := h.importService.ReadGrid(reader, tabular.Tab)
	if err != nil {
		h.logger.Warn("Failed to read imported file",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("file_name", doc.FileName),
		)
		if errors.Is(err, domain.ErrEmptyFile) {
			return c.Send(msgEmptyFile, cancelMarkup())
		}
		return c.Send(msgUnreadable, cancelMarkup())
	}

	header := hasHeader(c.Message().Caption)
	h.SetState(userID, &ChatState{
		State:  domain.StateImportEnglish,
		Grid:   grid,
		Header: header,
	})

	h.logger.Info("Word list uploaded",
		zap.Int64("user_id", userID),
		zap.String("file_name", doc.FileName),
		zap.Int("rows", len(grid)),
		zap.Bool("header", header),
	)

	return c.Send(
		renderPreview(grid)+"\n🇬🇧 英語の列を選んでください：",
		columnMarkup(btnColEnglish, columnLabels(grid, header)),
	)
}

func hasHeader(caption string) bool {
	caption = strings.ToLower(caption)
	for _, marker := range noHeaderCaptions {
		if strings.Contains(caption, marker) {
			return false
		}
	}
	return true
}

// pickedColumn reads the column index carried by a column button
func pickedColumn(c tele.Context, grid domain.Grid) (int, bool) {
	index, err := strconv.Atoi(c.Callback().Data)
	if err != nil || index < 0 || index >= grid.Width() {
		return 0, false
	}
	return index, true
}

// handleEnglishColumn stores the english column and asks for the japanese one
func (h *Handler) handleEnglishColumn(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	if state.State != domain.StateImportEnglish {
		return alert(c, msgSessionGone)
	}

	index, ok := pickedColumn(c, state.Grid)
	if !ok {
		return alert(c, msgPickColumn)
	}

	state.EnglishCol = index
	state.State = domain.StateImportJapanese

	labels := columnLabels(state.Grid, state.Header)
	return h.show(c,
		"🇬🇧 英語: "+labels[index]+"\n\n🇯🇵 日本語の列を選んでください：",
		columnMarkup(btnColJapanese, labels),
	)
}

// handleJapaneseColumn converts the uploaded grid and replaces the stored word list
func (h *Handler) handleJapaneseColumn(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	if state.State != domain.StateImportJapanese {
		return alert(c, msgSessionGone)
	}

	index, ok := pickedColumn(c, state.Grid)
	if !ok {
		return alert(c, msgPickColumn)
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	cols := domain.Columns{English: state.EnglishCol, Japanese: index, Header: state.Header}
	result, err := h.importService.Import(ctx, state.Grid, cols)
	switch {
	case errors.Is(err, domain.ErrNoValidWords):
		// Keep the grid so another column pair can be tried
		state.State = domain.StateImportEnglish
		return h.show(c,
			msgNoValidWords+"\n\n🇬🇧 英語の列を選んでください：",
			columnMarkup(btnColEnglish, columnLabels(state.Grid, state.Header)),
		)
	case err != nil:
		h.logger.Error("Failed to import words", zap.Error(err), zap.Int64("user_id", userID))
		h.ResetState(userID)
		return h.show(c, msgInternalError, backMarkup())
	}

	h.ResetState(userID)
	return h.show(c,
		renderImportResult(result)+"\n\n"+renderMenu(h.statsService.Summary(ctx)),
		mainMenuMarkup(),
	)
}
