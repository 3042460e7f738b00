package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"capsterapi/internal/model"
)

// Stage is a step of the generative content flow as a client session sees it.
type Stage string

const (
	// StageUpload is the initial stage: waiting for a file.
	StageUpload Stage = "upload"
	// StageProcessing covers the storage upload and the inference call.
	StageProcessing Stage = "processing"
	// StageResult means captions are available and one can be selected and
	// shared.
	StageResult Stage = "result"
)

var ErrWrongStage = errors.New("operation not allowed in current stage")

// Flow drives one client session through the generative content pipeline:
// upload -> processing -> result, with any failure or an explicit reset
// ("new cut") returning to upload. Caption selection is local to the flow and
// persists nothing until Share.
//
// A Flow belongs to a single session and must not be shared between
// goroutines; there is no cancellation beyond the context passed to each
// call. Abandoning a flow mid-processing leaves the in-flight work to finish
// or fail on its own, with its result applied to the stored post but
// discarded here.
type Flow struct {
	svc  ContentService
	sess model.Session

	stage    Stage
	post     *model.Post
	selected string
}

// NewFlow starts a flow in the upload stage for the given session.
func NewFlow(svc ContentService, sess model.Session) *Flow {
	return &Flow{svc: svc, sess: sess, stage: StageUpload}
}

// Stage returns the flow's current stage.
func (f *Flow) Stage() Stage { return f.stage }

// Post returns the post attached to the flow, nil before a successful upload.
func (f *Flow) Post() *model.Post { return f.post }

// SelectedCaption returns the locally selected caption, empty until selected.
func (f *Flow) SelectedCaption() string { return f.selected }

// Upload runs the pipeline's upload transition. On success the flow moves to
// the result stage with captions attached; on any failure it returns to the
// upload stage and the error carries the user-visible message. A failed
// inference call leaves the stored row behind as 'failed'.
func (f *Flow) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) error {
	if f.stage != StageUpload {
		return fmt.Errorf("%w: upload from %s", ErrWrongStage, f.stage)
	}

	f.stage = StageProcessing
	post, err := f.svc.Generate(ctx, f.sess, r, originalFilename, contentType, size)
	if err != nil {
		f.Reset()
		return err
	}

	f.post = post
	f.stage = StageResult
	return nil
}

// SelectCaption records the technician's choice locally. It is re-entrant and
// side-effect free: selecting again simply replaces the previous choice, and
// nothing is persisted until Share.
func (f *Flow) SelectCaption(caption string) error {
	if f.stage != StageResult {
		return fmt.Errorf("%w: select caption from %s", ErrWrongStage, f.stage)
	}
	if !captionOffered(f.post.GeneratedCaptions, caption) {
		return ErrCaptionNotOffered
	}
	f.selected = caption
	return nil
}

// Share publishes the selected caption and resets the flow for the next
// upload. On failure the flow stays in the result stage so the technician can
// retry or reset.
func (f *Flow) Share(ctx context.Context) error {
	if f.stage != StageResult {
		return fmt.Errorf("%w: share from %s", ErrWrongStage, f.stage)
	}
	if f.selected == "" {
		return ErrCaptionRequired
	}

	if _, err := f.svc.Publish(ctx, f.sess, f.post.ID, f.selected); err != nil {
		return err
	}

	f.Reset()
	return nil
}

// Reset returns the flow to the upload stage, dropping local state. A post
// already stored stays in its prior state with no caption selected.
func (f *Flow) Reset() {
	f.stage = StageUpload
	f.post = nil
	f.selected = ""
}
