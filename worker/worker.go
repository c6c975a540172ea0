package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/turjubaan/turjubaan/interfaces"
	logger "github.com/turjubaan/turjubaan/log"
	"github.com/turjubaan/turjubaan/media"
	"github.com/turjubaan/turjubaan/prefs"
	"github.com/turjubaan/turjubaan/validate"
)

// User-facing pipeline messages. Only these classifications ever reach the
// end user; the underlying causes go to the logs.
var (
	MsgProcessing = "Processing..."
	MsgNoSpeech   = "No speech detected."
	MsgFailed     = "Could not transcribe audio."
	MsgBadFormat  = fmt.Sprintf("Unsupported file format. Please send a file in one of these formats: %s.", strings.Join(validate.AllowedFormats, ", "))
	MsgTooLarge   = fmt.Sprintf("The file is too large. Maximum allowed size is %dMB. Please send a smaller file.", validate.MaxFileSizeMB)
)

// Job holds all the necessary data for a single transcription task.
type Job struct {
	FileID           string
	FileName         string
	SenderID         int64
	ChatID           int64
	ReplyToMessageID int
	DeclaredSize     int64
}

// Stats receives job outcome counters.
type Stats interface {
	IncProcessed()
	IncFailed()
	IncRejected()
}

// Pool manages a pool of workers and a queue of jobs.
type Pool struct {
	JobQueue   chan Job
	MaxWorkers int

	Transport interfaces.Transport
	STT       interfaces.SpeechToText
	Prefs     *prefs.Store
	Logger    logger.Logger
	Stats     Stats

	DownloadsDir      string
	TranscribeTimeout time.Duration

	// Convert normalizes a downloaded file into a waveform sibling. It is a
	// field so tests can substitute the ffmpeg invocation.
	Convert func(inputPath string) (string, error)
}

// New creates a new Pool.
func New(maxWorkers, queueSize int, transport interfaces.Transport, stt interfaces.SpeechToText, store *prefs.Store, stats Stats, log logger.Logger, downloadsDir string, transcribeTimeout time.Duration) *Pool {
	return &Pool{
		JobQueue:          make(chan Job, queueSize),
		MaxWorkers:        maxWorkers,
		Transport:         transport,
		STT:               stt,
		Prefs:             store,
		Logger:            log,
		Stats:             stats,
		DownloadsDir:      downloadsDir,
		TranscribeTimeout: transcribeTimeout,
		Convert:           media.ToWav,
	}
}

// Start creates and starts the worker goroutines.
func (wp *Pool) Start() {
	for i := 1; i <= wp.MaxWorkers; i++ {
		go wp.worker()
	}
}

// Submit adds a new job to the job queue.
func (wp *Pool) Submit(job Job) {
	wp.JobQueue <- job
}

// worker is a goroutine that continuously processes jobs from the JobQueue.
func (wp *Pool) worker() {
	for job := range wp.JobQueue {
		wp.processJob(job)
	}
}

// processJob drives one job end to end: validate, placeholder, download,
// normalize, transcribe, edit the placeholder with the result, and remove
// every temporary file regardless of which path was taken.
func (wp *Pool) processJob(job Job) {
	switch validate.Check(job.FileName, job.DeclaredSize) {
	case validate.RejectFormat:
		wp.reply(job, MsgBadFormat)
		wp.Stats.IncRejected()
		return
	case validate.RejectSize:
		wp.reply(job, MsgTooLarge)
		wp.Stats.IncRejected()
		return
	}

	placeholderID, err := wp.Transport.SendReply(job.ChatID, job.ReplyToMessageID, MsgProcessing)
	if err != nil {
		wp.Logger.Error(fmt.Sprintf("Error sending placeholder for file %s", job.FileID), err)
		wp.Stats.IncFailed()
		return
	}

	// The file id is unique per inbound media event, so concurrent jobs with
	// identical original file names cannot collide.
	downloadPath := filepath.Join(wp.DownloadsDir, job.FileID+"_"+job.FileName)
	tempFiles := []string{downloadPath}
	if wavSibling := media.WavPath(downloadPath); wavSibling != downloadPath {
		tempFiles = append(tempFiles, wavSibling)
	}
	defer wp.removeTempFiles(tempFiles)

	if err := wp.Transport.Download(context.Background(), job.FileID, downloadPath); err != nil {
		wp.Logger.Error(fmt.Sprintf("Error downloading file %s", job.FileID), err)
		wp.edit(job, placeholderID, MsgFailed)
		wp.Stats.IncFailed()
		return
	}

	wavPath, err := wp.Convert(downloadPath)
	if err != nil {
		wp.Logger.Error(fmt.Sprintf("Error converting file %s", job.FileID), err)
		wp.edit(job, placeholderID, MsgFailed)
		wp.Stats.IncFailed()
		return
	}

	audioData, err := os.ReadFile(wavPath)
	if err != nil {
		wp.Logger.Error(fmt.Sprintf("Error reading waveform for file %s", job.FileID), err)
		wp.edit(job, placeholderID, MsgFailed)
		wp.Stats.IncFailed()
		return
	}

	language := wp.Prefs.Get(job.SenderID)

	ctx, cancel := context.WithTimeout(context.Background(), wp.TranscribeTimeout)
	defer cancel()
	transcript, err := wp.STT.Transcribe(ctx, audioData, language)
	if err != nil {
		wp.Logger.Error(fmt.Sprintf("Error transcribing file %s", job.FileID), err)
		wp.edit(job, placeholderID, MsgFailed)
		wp.Stats.IncFailed()
		return
	}

	if transcript == "" {
		wp.edit(job, placeholderID, MsgNoSpeech)
	} else {
		// The transcript goes out verbatim, with no added commentary.
		wp.edit(job, placeholderID, transcript)
	}
	wp.Stats.IncProcessed()
}

func (wp *Pool) reply(job Job, text string) {
	if _, err := wp.Transport.SendReply(job.ChatID, job.ReplyToMessageID, text); err != nil {
		wp.Logger.Error(fmt.Sprintf("Error replying for file %s", job.FileID), err)
	}
}

func (wp *Pool) edit(job Job, messageID int, text string) {
	if err := wp.Transport.EditMessage(job.ChatID, messageID, text); err != nil {
		wp.Logger.Error(fmt.Sprintf("Error editing result message for file %s", job.FileID), err)
	}
}

// removeTempFiles deletes the job's temporary artifacts. Deletion errors are
// logged, never escalated; a file that was never created is not an error.
func (wp *Pool) removeTempFiles(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			wp.Logger.Error(fmt.Sprintf("Error cleaning up %s", path), err)
		}
	}
}
