// Package indexer extracts searchable text from uploaded files in the
// background. Uploads finish without waiting on extraction; a bounded
// worker pool catches up and marks each document indexed.
package indexer

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/doctajus/lexhub/internal/app/system/textextract"
	"github.com/doctajus/lexhub/internal/app/system/timeouts"
)

// DocumentMarker records extraction results on the document record.
// The documents store implements it.
type DocumentMarker interface {
	MarkIndexed(ctx context.Context, id primitive.ObjectID, contenido string) error
}

// Job holds the bytes of one uploaded file awaiting extraction.
type Job struct {
	DocumentoID primitive.ObjectID
	Data        []byte
	ContentType string
}

// Indexer is the background extraction pool.
type Indexer struct {
	docs        DocumentMarker
	log         *zap.Logger
	jobQueue    chan Job
	concurrency int
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// New creates an Indexer with the given worker count and queue capacity.
func New(docs DocumentMarker, logger *zap.Logger, concurrency, queueSize int) *Indexer {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Indexer{
		docs:        docs,
		log:         logger,
		jobQueue:    make(chan Job, queueSize),
		concurrency: concurrency,
		stopCh:      make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (ix *Indexer) Start() {
	for i := 0; i < ix.concurrency; i++ {
		ix.wg.Add(1)
		go ix.processJobs(i + 1)
	}
	ix.log.Info("indexer started",
		zap.Int("concurrency", ix.concurrency),
		zap.Int("queue_size", cap(ix.jobQueue)))
}

// Stop signals the workers to stop and waits for in-flight jobs to finish.
// Queued jobs that no worker picked up are dropped; the affected documents
// simply stay unindexed.
func (ix *Indexer) Stop() {
	close(ix.stopCh)
	ix.wg.Wait()
	ix.log.Info("indexer stopped")
}

// Enqueue hands a file to the pool. It never blocks the caller: when the
// queue is full the job is dropped and the document stays unindexed.
func (ix *Indexer) Enqueue(job Job) {
	select {
	case ix.jobQueue <- job:
	default:
		ix.log.Warn("indexer queue full, dropping job",
			zap.String("documento_id", job.DocumentoID.Hex()))
	}
}

func (ix *Indexer) processJobs(workerID int) {
	defer ix.wg.Done()

	for {
		select {
		case <-ix.stopCh:
			return
		case job := <-ix.jobQueue:
			ix.process(workerID, job)
		}
	}
}

func (ix *Indexer) process(workerID int, job Job) {
	text, err := textextract.Extract(job.Data, job.ContentType)
	if err != nil {
		// Extraction failure never fails the upload that queued it.
		ix.log.Warn("text extraction failed",
			zap.Int("worker", workerID),
			zap.String("documento_id", job.DocumentoID.Hex()),
			zap.String("content_type", job.ContentType),
			zap.Error(err))
		return
	}

	if text == "" {
		// Unsupported formats (e.g. Word) extract nothing; the document
		// stays unindexed.
		ix.log.Info("no text extracted, document left unindexed",
			zap.Int("worker", workerID),
			zap.String("documento_id", job.DocumentoID.Hex()),
			zap.String("content_type", job.ContentType))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	if err := ix.docs.MarkIndexed(ctx, job.DocumentoID, text); err != nil {
		ix.log.Error("failed to mark document indexed",
			zap.Int("worker", workerID),
			zap.String("documento_id", job.DocumentoID.Hex()),
			zap.Error(err))
		return
	}

	ix.log.Info("document indexed",
		zap.String("documento_id", job.DocumentoID.Hex()),
		zap.Int("content_length", len(text)))
}
