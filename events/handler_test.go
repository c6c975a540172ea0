package events

import (
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turjubaan/turjubaan/languages"
	logger "github.com/turjubaan/turjubaan/log"
	"github.com/turjubaan/turjubaan/prefs"
)

func mediaMessage(msgID int) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: msgID,
		From:      &tgbotapi.User{ID: 7},
		Chat:      &tgbotapi.Chat{ID: 100},
	}
}

func TestJobFromMessage_Document(t *testing.T) {
	m := mediaMessage(12)
	m.Document = &tgbotapi.Document{FileID: "doc1", FileName: "report.mp4", FileSize: 2048}

	job, ok := JobFromMessage(m)
	require.True(t, ok)
	assert.Equal(t, "doc1", job.FileID)
	assert.Equal(t, "report.mp4", job.FileName)
	assert.Equal(t, int64(2048), job.DeclaredSize)
	assert.Equal(t, int64(7), job.SenderID)
	assert.Equal(t, int64(100), job.ChatID)
	assert.Equal(t, 12, job.ReplyToMessageID)
}

func TestJobFromMessage_AudioFallbackName(t *testing.T) {
	m := mediaMessage(34)
	m.Audio = &tgbotapi.Audio{FileID: "aud1"}

	job, ok := JobFromMessage(m)
	require.True(t, ok)
	assert.Equal(t, "audio_34.mp3", job.FileName)
}

func TestJobFromMessage_VideoFallbackName(t *testing.T) {
	m := mediaMessage(35)
	m.Video = &tgbotapi.Video{FileID: "vid1"}

	job, ok := JobFromMessage(m)
	require.True(t, ok)
	assert.Equal(t, "video_35.mp4", job.FileName)
}

func TestJobFromMessage_VoiceSynthesizedName(t *testing.T) {
	m := mediaMessage(36)
	m.Voice = &tgbotapi.Voice{FileID: "voi1", FileSize: 512}

	job, ok := JobFromMessage(m)
	require.True(t, ok)
	assert.Equal(t, "voice_message_36.ogg", job.FileName)
	assert.Equal(t, int64(512), job.DeclaredSize)
}

func TestJobFromMessage_VideoNoteSynthesizedName(t *testing.T) {
	m := mediaMessage(37)
	m.VideoNote = &tgbotapi.VideoNote{FileID: "vn1"}

	job, ok := JobFromMessage(m)
	require.True(t, ok)
	assert.Equal(t, "video_note_37.mp4", job.FileName)
}

func TestJobFromMessage_TextMessageIsNotAJob(t *testing.T) {
	m := mediaMessage(38)
	m.Text = "hello"

	_, ok := JobFromMessage(m)
	assert.False(t, ok)
}

func newTestStore(t *testing.T) *prefs.Store {
	t.Helper()
	store := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"), logger.NewLogger(nil, 0))
	store.Load()
	return store
}

func TestSelectLanguage_ValidCode(t *testing.T) {
	store := newTestStore(t)

	confirmation := SelectLanguage(store, 7, "so")

	assert.Equal(t, "Language set to Soomaali.", confirmation)
	assert.Equal(t, "so", store.Get(7))
}

func TestSelectLanguage_UnknownCodeNeverReachesStore(t *testing.T) {
	store := newTestStore(t)

	confirmation := SelectLanguage(store, 7, "zz")

	assert.Equal(t, "That language is not supported.", confirmation)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, "en", store.Get(7))
}

func TestLanguageKeyboard_TwoPerRowWithCallbackData(t *testing.T) {
	kb := LanguageKeyboard()

	total := 0
	for _, row := range kb.InlineKeyboard {
		assert.LessOrEqual(t, len(row), 2)
		total += len(row)
	}
	assert.Equal(t, len(languages.Codes()), total)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "English", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "lang_en", *first.CallbackData)
}
