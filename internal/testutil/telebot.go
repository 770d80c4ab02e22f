package testutil

import (
	"errors"
	"sync"

	tele "gopkg.in/telebot.v3"
)

// ErrNotModified mimics the API error returned when an edit leaves a message unchanged
var ErrNotModified = errors.New("telegram: Bad Request: message is not modified (400)")

// FakeContext is a tele.Context recording everything a handler sends.
// Methods that are not overridden panic when called.
type FakeContext struct {
	tele.Context

	User *tele.User
	Msg  *tele.Message
	Cb   *tele.Callback

	// EditErr is returned by Edit when set
	EditErr error

	mu        sync.Mutex
	Sent      []string
	Edited    []string
	Markups   []*tele.ReplyMarkup
	Responses []*tele.CallbackResponse
	outputs   []string
}

// NewTextContext builds a context for a plain text message
func NewTextContext(userID int64, text string) *FakeContext {
	user := &tele.User{ID: userID}
	return &FakeContext{
		User: user,
		Msg:  &tele.Message{Sender: user, Text: text, Chat: &tele.Chat{ID: userID}},
	}
}

// NewCallbackContext builds a context for an inline button press
func NewCallbackContext(userID int64, unique, data string) *FakeContext {
	user := &tele.User{ID: userID}
	return &FakeContext{
		User: user,
		Cb: &tele.Callback{
			ID:      "cb",
			Sender:  user,
			Unique:  unique,
			Data:    data,
			Message: &tele.Message{ID: 1, Chat: &tele.Chat{ID: userID}},
		},
	}
}

// NewDocumentContext builds a context for an uploaded document
func NewDocumentContext(userID int64, fileName, caption string) *FakeContext {
	user := &tele.User{ID: userID}
	return &FakeContext{
		User: user,
		Msg: &tele.Message{
			Sender:   user,
			Chat:     &tele.Chat{ID: userID},
			Caption:  caption,
			Document: &tele.Document{File: tele.File{FileID: "file-" + fileName}, FileName: fileName},
		},
	}
}

func (c *FakeContext) Sender() *tele.User {
	return c.User
}

func (c *FakeContext) Message() *tele.Message {
	if c.Msg == nil && c.Cb != nil {
		return c.Cb.Message
	}
	return c.Msg
}

func (c *FakeContext) Callback() *tele.Callback {
	return c.Cb
}

func (c *FakeContext) Text() string {
	if m := c.Message(); m != nil {
		return m.Text
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sent = append(c.Sent, toText(what))
	c.outputs = append(c.outputs, toText(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Edited = append(c.Edited, toText(what))
	c.outputs = append(c.outputs, toText(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(resp) == 0 {
		c.Responses = append(c.Responses, &tele.CallbackResponse{})
		return nil
	}
	c.Responses = append(c.Responses, resp[0])
	return nil
}

// Shown returns every text sent or edited, in order
func (c *FakeContext) Shown() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.outputs...)
}

// LastText returns the most recent text sent or edited
func (c *FakeContext) LastText() string {
	shown := c.Shown()
	if len(shown) == 0 {
		return ""
	}
	return shown[len(shown)-1]
}

// LastMarkup returns the keyboard attached to the most recent output
func (c *FakeContext) LastMarkup() *tele.ReplyMarkup {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Markups) == 0 {
		return nil
	}
	return c.Markups[len(c.Markups)-1]
}

// Uniques lists the button identifiers of a keyboard, row by row
func Uniques(markup *tele.ReplyMarkup) []string {
	if markup == nil {
		return nil
	}
	var uniques []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			uniques = append(uniques, btn.Unique)
		}
	}
	return uniques
}

func toText(what interface{}) string {
	if s, ok := what.(string); ok {
		return s
	}
	return ""
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}
