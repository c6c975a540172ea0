// turjubaan/interfaces/transport.go
package interfaces

import "context"

// Transport is the slice of the messaging transport the pipeline needs:
// send a reply, edit it in place, and fetch a file's bytes to disk.
type Transport interface {
	// SendReply sends text to a chat as a reply and returns the new
	// message's id, so the caller can edit it later.
	SendReply(chatID int64, replyToMessageID int, text string) (int, error)

	// EditMessage replaces the text of a previously sent message.
	EditMessage(chatID int64, messageID int, text string) error

	// Download fetches the file identified by fileID into destPath.
	Download(ctx context.Context, fileID, destPath string) error
}
