package subm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shiplogix/backend/srvcerror"
	"github.com/shiplogix/backend/subm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitCareer(t *testing.T, env *testEnv) *subm.Submission {
	t.Helper()
	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)
	return s
}

func TestSetReviewStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	s := submitCareer(t, env)

	updated, err := env.srvc.SetReviewStatus(context.Background(), s.ID, "shortlisted")
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", updated.ReviewStatus)

	stored, err := env.repo.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", stored.ReviewStatus)
}

func TestSetReviewStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t, nil)
	s := submitCareer(t, env)

	// "admitted" belongs to institute applications, not careers
	_, err := env.srvc.SetReviewStatus(context.Background(), s.ID, "admitted")
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, subm.ErrCodeInvalidReviewStatus, srvcErr.ErrorCode())
}

func TestDeleteRemovesRecordAndAttachment(t *testing.T) {
	env := newTestEnv(t, nil)
	s := submitCareer(t, env)
	final := waitForTerminal(t, env.repo, s.ID)

	require.NoError(t, env.srvc.DeleteSubm(context.Background(), s.ID))

	_, err := env.repo.Get(context.Background(), s.ID)
	assert.ErrorIs(t, err, subm.ErrNotFound)
	assert.False(t, env.files.Exists(final.AttachmentRef))
}

func TestGetSubmNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.srvc.GetSubm(context.Background(), uuid.New())
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, subm.ErrCodeSubmissionNotFound, srvcErr.ErrorCode())
}

func TestAttachmentDownload(t *testing.T) {
	env := newTestEnv(t, nil)
	s := submitCareer(t, env)
	waitForTerminal(t, env.repo, s.ID)

	name, path, err := env.srvc.Attachment(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Resume_Jane_Doe.pdf", name)
	assert.FileExists(t, path)
}

func TestListSubmsPaginationAndTotals(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s := submitCareer(t, env)
		waitForTerminal(t, env.repo, s.ID)
	}

	res, err := env.srvc.ListSubms(ctx, subm.ListFilter{
		Kind: subm.KindCareer, Page: 1, Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Subms, 2)
	assert.Equal(t, 5, res.TotalCompleted)
	assert.Equal(t, 0, res.TotalFailed)

	last, err := env.srvc.ListSubms(ctx, subm.ListFilter{
		Kind: subm.KindCareer, Page: 3, Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, last.Subms, 1)
}

func TestMarkStuckIfPendingIsConditional(t *testing.T) {
	repo := subm.NewInMemRepo()
	ctx := context.Background()

	s := subm.Submission{ID: uuid.New(), Kind: subm.KindCareer,
		ProcessingStatus: subm.StatusPending}
	require.NoError(t, repo.Store(ctx, s))

	flagged, err := repo.MarkStuckIfPending(ctx, s.ID, "too slow")
	require.NoError(t, err)
	assert.True(t, flagged)

	completed := subm.StatusCompleted
	require.NoError(t, repo.Patch(ctx, s.ID, subm.Patch{ProcessingStatus: &completed}))

	flagged, err = repo.MarkStuckIfPending(ctx, s.ID, "too slow")
	require.NoError(t, err)
	assert.False(t, flagged, "a terminal record must never be flagged stuck")

	stored, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, subm.StatusCompleted, stored.ProcessingStatus)
}
