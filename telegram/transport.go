// Package telegram adapts the Bot API session to the transport interface
// the pipeline consumes.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Transport wraps a Bot API session with the send/edit/download operations
// the pipeline needs.
type Transport struct {
	bot    *tgbotapi.BotAPI
	client *http.Client
}

// NewTransport creates a Transport around an open bot session.
func NewTransport(bot *tgbotapi.BotAPI) *Transport {
	return &Transport{bot: bot, client: http.DefaultClient}
}

// SendReply sends text as a reply in the given chat and returns the new
// message id so it can be edited in place later.
func (t *Transport) SendReply(chatID int64, replyToMessageID int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyToMessageID
	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessage replaces the text of a previously sent message.
func (t *Transport) EditMessage(chatID int64, messageID int, text string) error {
	_, err := t.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// Download resolves the file id to a download URL and streams the body to
// destPath. The body is streamed, not buffered, since inputs can run to
// hundreds of megabytes.
func (t *Transport) Download(ctx context.Context, fileID, destPath string) error {
	file, err := t.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("could not resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(t.bot.Token), nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file download for %s returned status %d", fileID, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("could not write download to %s: %w", destPath, err)
	}
	return out.Close()
}
