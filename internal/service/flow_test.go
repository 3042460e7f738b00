package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"capsterapi/internal/inference"
	gwMocks "capsterapi/internal/inference/mocks"
	"capsterapi/internal/model"
	repoMocks "capsterapi/internal/repository/mocks"
	"capsterapi/internal/storage"
	storeMocks "capsterapi/internal/storage/mocks"
)

// flowFixture wires a Flow over a real ContentService with mocked collaborators.
type flowFixture struct {
	store *storeMocks.MockStorage
	repo  *repoMocks.MockPostRepository
	gw    *gwMocks.MockGateway
	flow  *Flow
}

func newFlowFixture(sess model.Session) *flowFixture {
	f := &flowFixture{
		store: new(storeMocks.MockStorage),
		repo:  new(repoMocks.MockPostRepository),
		gw:    new(gwMocks.MockGateway),
	}
	f.flow = NewFlow(NewContentService(f.store, f.repo, f.gw), sess)
	return f
}

func (f *flowFixture) expectHappyUpload() {
	captions := []string{"A cool haircut", "Varian 1", "Varian 2"}

	f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, nil)
	f.store.On("PublicURL", mock.Anything).Return("http://cdn.local/raw.jpg")
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(&model.Post{ID: "post-1", TechnicianID: "tech-1", AIStatus: model.AIStatusProcessing}, nil)
	f.gw.On("RequestCaption", mock.Anything, "http://cdn.local/raw.jpg").
		Return(&inference.CaptionResult{Captions: captions, EnhancedImage: "https://cdn.local/raw.jpg?enhance=ai"}, nil)
	f.repo.On("AttachGeneration", mock.Anything, "post-1", "https://cdn.local/raw.jpg?enhance=ai", captions).
		Return(&model.Post{
			ID:                "post-1",
			TechnicianID:      "tech-1",
			GeneratedCaptions: captions,
			EnhancedImageURL:  "https://cdn.local/raw.jpg?enhance=ai",
			AIStatus:          model.AIStatusGenerated,
		}, nil)
}

func TestFlow_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(techSession)
	f.expectHappyUpload()

	assert.Equal(t, StageUpload, f.flow.Stage())

	err := f.flow.Upload(ctx, strings.NewReader("jpeg"), "cut.jpg", "image/jpeg", 4)
	require.NoError(t, err)
	assert.Equal(t, StageResult, f.flow.Stage())
	require.NotNil(t, f.flow.Post())
	assert.Len(t, f.flow.Post().GeneratedCaptions, 3)

	require.NoError(t, f.flow.SelectCaption("A cool haircut"))

	published := &model.Post{ID: "post-1", SelectedCaption: "A cool haircut", AIStatus: model.AIStatusCompleted}
	f.repo.On("FindByID", mock.Anything, "post-1").Return(f.flow.Post(), nil)
	f.repo.On("Publish", mock.Anything, "post-1", "A cool haircut").Return(published, nil)

	require.NoError(t, f.flow.Share(ctx))
	assert.Equal(t, StageUpload, f.flow.Stage())
	assert.Nil(t, f.flow.Post())
	assert.Empty(t, f.flow.SelectedCaption())
}

func TestFlow_NonTechnicianRejected(t *testing.T) {
	f := newFlowFixture(customerSession)

	err := f.flow.Upload(context.Background(), strings.NewReader("x"), "cut.jpg", "image/jpeg", 1)

	assert.ErrorIs(t, err, ErrNotTechnician)
	assert.Equal(t, StageUpload, f.flow.Stage())
	f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.gw.AssertNotCalled(t, "RequestCaption", mock.Anything, mock.Anything)
}

func TestFlow_InferenceOutageReturnsToUpload(t *testing.T) {
	f := newFlowFixture(techSession)

	f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, nil)
	f.store.On("PublicURL", mock.Anything).Return("http://cdn.local/raw.jpg")
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(&model.Post{ID: "post-1", AIStatus: model.AIStatusProcessing}, nil)
	f.gw.On("RequestCaption", mock.Anything, "http://cdn.local/raw.jpg").
		Return(nil, &inference.UpstreamError{StatusCode: http.StatusServiceUnavailable, Message: "overloaded"})
	f.repo.On("MarkFailed", mock.Anything, "post-1").Return(nil)

	err := f.flow.Upload(context.Background(), strings.NewReader("x"), "cut.jpg", "image/jpeg", 1)

	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.Equal(t, StageUpload, f.flow.Stage())
	assert.Nil(t, f.flow.Post())
	f.repo.AssertCalled(t, "MarkFailed", mock.Anything, "post-1")
}

func TestFlow_CaptionSelectionIsLocalAndReentrant(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(techSession)
	f.expectHappyUpload()
	require.NoError(t, f.flow.Upload(ctx, strings.NewReader("x"), "cut.jpg", "image/jpeg", 1))

	require.NoError(t, f.flow.SelectCaption("A cool haircut"))
	require.NoError(t, f.flow.SelectCaption("Varian 1"))
	require.NoError(t, f.flow.SelectCaption("Varian 1"))
	require.NoError(t, f.flow.SelectCaption("Varian 2"))

	// Last selection wins and nothing was persisted along the way.
	assert.Equal(t, "Varian 2", f.flow.SelectedCaption())
	f.repo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)

	err := f.flow.SelectCaption("made up caption")
	assert.ErrorIs(t, err, ErrCaptionNotOffered)
	assert.Equal(t, "Varian 2", f.flow.SelectedCaption())
}

func TestFlow_ShareWithoutSelection(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(techSession)
	f.expectHappyUpload()
	require.NoError(t, f.flow.Upload(ctx, strings.NewReader("x"), "cut.jpg", "image/jpeg", 1))

	err := f.flow.Share(ctx)

	assert.ErrorIs(t, err, ErrCaptionRequired)
	assert.Equal(t, StageResult, f.flow.Stage())
}

func TestFlow_ResetWithoutPublishing(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(techSession)
	f.expectHappyUpload()
	require.NoError(t, f.flow.Upload(ctx, strings.NewReader("x"), "cut.jpg", "image/jpeg", 1))
	require.NoError(t, f.flow.SelectCaption("Varian 1"))

	f.flow.Reset()

	assert.Equal(t, StageUpload, f.flow.Stage())
	assert.Nil(t, f.flow.Post())
	assert.Empty(t, f.flow.SelectedCaption())
	// The stored row is untouched: no publish and no delete happened.
	f.repo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything)
}

func TestFlow_StageGuards(t *testing.T) {
	ctx := context.Background()
	f := newFlowFixture(techSession)

	assert.ErrorIs(t, f.flow.SelectCaption("x"), ErrWrongStage)
	assert.ErrorIs(t, f.flow.Share(ctx), ErrWrongStage)

	f.expectHappyUpload()
	require.NoError(t, f.flow.Upload(ctx, strings.NewReader("x"), "cut.jpg", "image/jpeg", 1))

	// A second upload without a reset is not a valid transition.
	assert.ErrorIs(t, f.flow.Upload(ctx, strings.NewReader("y"), "cut2.jpg", "image/jpeg", 1), ErrWrongStage)
}
