// Package events handles Telegram updates and dispatches them to the
// command surface or the transcription pipeline.
package events

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/turjubaan/turjubaan/languages"
	logger "github.com/turjubaan/turjubaan/log"
	"github.com/turjubaan/turjubaan/prefs"
	"github.com/turjubaan/turjubaan/worker"
)

const langCallbackPrefix = "lang_"

type Handler struct {
	Bot    *tgbotapi.BotAPI
	Pool   *worker.Pool
	Prefs  *prefs.Store
	Logger logger.Logger
}

func NewHandler(bot *tgbotapi.BotAPI, pool *worker.Pool, store *prefs.Store, logger logger.Logger) *Handler {
	return &Handler{
		Bot:    bot,
		Pool:   pool,
		Prefs:  store,
		Logger: logger,
	}
}

// HandleUpdate routes one inbound update.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	m := update.Message

	if m.IsCommand() {
		h.handleCommand(m)
		return
	}

	if job, ok := JobFromMessage(m); ok {
		h.Pool.Submit(job)
		return
	}

	// Plain text that is neither a command nor a media-group caption.
	if m.Text != "" && m.MediaGroupID == "" {
		h.reply(m, "Please send me an audio or video file to transcribe.\n\n"+
			"You can use /language to change the transcription language or "+
			"/settings to view your current preferences.")
	}
}

func (h *Handler) handleCommand(m *tgbotapi.Message) {
	switch m.Command() {
	case "start":
		h.reply(m, "Send me audio/video files to transcribe.\n\n"+
			"Commands:\n"+
			"/language - Set language\n"+
			"/settings - View settings")
	case "language":
		msg := tgbotapi.NewMessage(m.Chat.ID, "Select language:")
		msg.ReplyToMessageID = m.MessageID
		msg.ReplyMarkup = LanguageKeyboard()
		if _, err := h.Bot.Send(msg); err != nil {
			h.Logger.Error("Error sending language keyboard", err)
		}
	case "settings":
		current := h.Prefs.Get(m.From.ID)
		h.reply(m, fmt.Sprintf("Current language: %s", languages.Name(current)))
	}
}

func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if !strings.HasPrefix(cb.Data, langCallbackPrefix) {
		return
	}
	confirmation := SelectLanguage(h.Prefs, cb.From.ID, strings.TrimPrefix(cb.Data, langCallbackPrefix))

	if _, err := h.Bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.Logger.Error("Error answering language callback", err)
	}
	if cb.Message == nil {
		return
	}
	msg := tgbotapi.NewMessage(cb.Message.Chat.ID, confirmation)
	msg.ReplyToMessageID = cb.Message.MessageID
	if _, err := h.Bot.Send(msg); err != nil {
		h.Logger.Error("Error confirming language selection", err)
	}
}

func (h *Handler) reply(m *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	if _, err := h.Bot.Send(msg); err != nil {
		h.Logger.Error("Error sending reply", err)
	}
}

// SelectLanguage validates a selected code against the catalog before it can
// reach the store, records it on success, and returns the confirmation text.
func SelectLanguage(store *prefs.Store, userID int64, code string) string {
	if !languages.Contains(code) {
		return "That language is not supported."
	}
	store.Set(userID, code)
	return fmt.Sprintf("Language set to %s.", languages.Name(code))
}

// LanguageKeyboard builds the inline keyboard for /language, two options
// per row, callback data "lang_<code>".
func LanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, code := range languages.Codes() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(languages.Name(code), langCallbackPrefix+code))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// JobFromMessage turns a media-bearing message into a pipeline job. Each
// media kind carries its own defaulting rule for a missing file name; a
// document's missing name stays empty and is rejected by intake validation.
func JobFromMessage(m *tgbotapi.Message) (worker.Job, bool) {
	job := worker.Job{
		ChatID:           m.Chat.ID,
		ReplyToMessageID: m.MessageID,
	}
	if m.From != nil {
		job.SenderID = m.From.ID
	}

	switch {
	case m.Document != nil:
		job.FileID = m.Document.FileID
		job.FileName = m.Document.FileName
		job.DeclaredSize = int64(m.Document.FileSize)
	case m.Audio != nil:
		job.FileID = m.Audio.FileID
		job.FileName = m.Audio.FileName
		if job.FileName == "" {
			job.FileName = fmt.Sprintf("audio_%d.mp3", m.MessageID)
		}
		job.DeclaredSize = int64(m.Audio.FileSize)
	case m.Video != nil:
		job.FileID = m.Video.FileID
		job.FileName = m.Video.FileName
		if job.FileName == "" {
			job.FileName = fmt.Sprintf("video_%d.mp4", m.MessageID)
		}
		job.DeclaredSize = int64(m.Video.FileSize)
	case m.Voice != nil:
		job.FileID = m.Voice.FileID
		job.FileName = fmt.Sprintf("voice_message_%d.ogg", m.MessageID)
		job.DeclaredSize = int64(m.Voice.FileSize)
	case m.VideoNote != nil:
		job.FileID = m.VideoNote.FileID
		job.FileName = fmt.Sprintf("video_note_%d.mp4", m.MessageID)
		job.DeclaredSize = int64(m.VideoNote.FileSize)
	default:
		return worker.Job{}, false
	}
	return job, true
}
