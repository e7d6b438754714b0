package subm_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiplogix/backend/filestore"
	"github.com/shiplogix/backend/notify"
	"github.com/shiplogix/backend/srvcerror"
	"github.com/shiplogix/backend/subm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompressor fails or succeeds without touching the filesystem.
type stubCompressor struct {
	err error
}

func (c *stubCompressor) Compress(ctx context.Context, path string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return path, nil
}

// fileCompressor mimics the real compressor's file juggling: it writes a
// compressed copy next to the input and removes the original.
type fileCompressor struct{}

func (c *fileCompressor) Compress(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	ext := filepath.Ext(path)
	outputPath := strings.TrimSuffix(path, ext) + "-compressed" + ext
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", err
	}
	return outputPath, nil
}

type stubNotifier struct {
	mu    sync.Mutex
	delay time.Duration
	err   error
	sent  []notify.Message
}

func (n *stubNotifier) Send(ctx context.Context, msg notify.Message) (string, error) {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	if n.err != nil {
		return "", n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return fmt.Sprintf("<msg-%d@test>", len(n.sent)), nil
}

func (n *stubNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message{}, n.sent...)
}

var testTable = &notify.RecipientTable{Kinds: map[string]notify.KindConfig{
	"retail_partner": {
		Title: "Retail Partner", To: []string{"partners@example.com"},
		Subject: "New Retail Partner Application - {firstName} {lastName}",
	},
	"career": {
		Title: "Career", To: []string{"hr@example.com", "recruitment@example.com"},
		Subject: "New Career Application - {firstName} {lastName}",
	},
	"enquiry": {
		Title: "Enquiry Forms", To: []string{"sales@example.com"},
		Subject: "[New Enquiry] - {serviceName}",
	},
}}

type testEnv struct {
	srvc     *subm.SubmissionSrvc
	repo     *subm.InMemRepo
	files    *filestore.Store
	notifier *stubNotifier
}

func newTestEnv(t *testing.T, mutate func(*subm.Options)) *testEnv {
	t.Helper()
	files, err := filestore.New(t.TempDir(), subm.UploadSubDirs()...)
	require.NoError(t, err)

	repo := subm.NewInMemRepo()
	notifier := &stubNotifier{}
	opts := subm.Options{
		Repo:       repo,
		Files:      files,
		Compressor: &stubCompressor{},
		Notifier:   notifier,
		Resolver:   notify.NewResolver(testTable),
		StuckAfter: time.Second,
		Logger:     slog.Default(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return &testEnv{
		srvc:     subm.NewSubmissionSrvc(opts),
		repo:     repo,
		files:    files,
		notifier: notifier,
	}
}

func careerPayload() subm.Payload {
	return subm.Payload{
		{Key: "firstName", Value: "Jane"},
		{Key: "lastName", Value: "Doe"},
		{Key: "mobile", Value: "9999999999"},
		{Key: "email", Value: "jane@x.com"},
		{Key: "employeeStatus", Value: "employed"},
		{Key: "position", Value: "Analyst"},
		{Key: "totalExperience", Value: "4 years"},
		{Key: "immediateStart", Value: "yes"},
		{Key: "relocation", Value: "no"},
	}
}

func saveResume(t *testing.T, files *filestore.Store) string {
	t.Helper()
	rel, err := files.Save("careers", "resume.pdf", strings.NewReader("%PDF-1.4 resume"))
	require.NoError(t, err)
	return rel
}

func waitForStatus(t *testing.T, repo *subm.InMemRepo, id uuid.UUID,
	pred func(subm.Status) bool) subm.Submission {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		s, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		if pred(s.ProcessingStatus) {
			return *s
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for submission status")
	return subm.Submission{}
}

func waitForTerminal(t *testing.T, repo *subm.InMemRepo, id uuid.UUID) subm.Submission {
	return waitForStatus(t, repo, id, subm.Status.Terminal)
}

func TestSubmitReturnsBeforeBackgroundWork(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.Notifier = &stubNotifier{delay: 500 * time.Millisecond}
	})

	started := time.Now()
	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Less(t, elapsed, 200*time.Millisecond,
		"intake latency must be bounded by the store write, not by dispatch")
	assert.Equal(t, subm.StatusPending, s.ProcessingStatus)

	stored, err := env.repo.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, subm.StatusPending, stored.ProcessingStatus)

	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusCompleted, final.ProcessingStatus)
}

func TestCompressionFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.Compressor = &stubCompressor{err: errors.New("ghostscript exploded")}
	})

	resume := saveResume(t, env.files)
	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: resume,
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusCompleted, final.ProcessingStatus)
	assert.Equal(t, resume, final.AttachmentRef,
		"the original attachment stays live when compression fails")
	assert.True(t, env.files.Exists(resume))

	msgs := env.notifier.messages()
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, env.files.Abs(resume), msgs[0].Attachments[0].Path)
}

func TestNotificationFailureIsFatal(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.Notifier = &stubNotifier{err: errors.New("smtp connection refused")}
	})

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusFailed, final.ProcessingStatus)
	assert.Contains(t, final.ProcessingError, "smtp connection refused")
}

func TestStuckDetection(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.StuckAfter = 40 * time.Millisecond
		o.Notifier = &stubNotifier{delay: 200 * time.Millisecond}
	})

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)

	// the timer fires while dispatch is still in flight
	flagged := waitForStatus(t, env.repo, s.ID, func(st subm.Status) bool {
		return st == subm.StatusStuck
	})
	assert.Equal(t, "Processing exceeded time limit", flagged.ProcessingError)

	// the unit is not cancelled: its late terminal write overwrites stuck
	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusCompleted, final.ProcessingStatus)
}

func TestStuckWriteSuppressedAfterTerminal(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.StuckAfter = 60 * time.Millisecond
	})

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	require.Equal(t, subm.StatusCompleted, final.ProcessingStatus)

	// even if the timer fires late, a terminal record is never flipped back
	time.Sleep(100 * time.Millisecond)
	after, err := env.repo.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, subm.StatusCompleted, after.ProcessingStatus)
}

func TestAttachmentReplacedAfterCompression(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.Compressor = &fileCompressor{}
	})

	resume := saveResume(t, env.files)
	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: resume,
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	require.Equal(t, subm.StatusCompleted, final.ProcessingStatus)

	assert.NotEqual(t, resume, final.AttachmentRef)
	assert.Contains(t, final.AttachmentRef, "-compressed")
	assert.False(t, env.files.Exists(resume), "pre-compression file must be gone")
	assert.True(t, env.files.Exists(final.AttachmentRef))

	msgs := env.notifier.messages()
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Attachments, 1)
	assert.Equal(t, "Resume_Jane_Doe.pdf", msgs[0].Attachments[0].Filename)
	assert.Equal(t, env.files.Abs(final.AttachmentRef), msgs[0].Attachments[0].Path)
}

func TestCareerScenario(t *testing.T) {
	env := newTestEnv(t, nil)

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusCompleted, final.ProcessingStatus)

	msgs := env.notifier.messages()
	require.Len(t, msgs, 1, "exactly one notification per submission")
	assert.Equal(t, []string{"hr@example.com", "recruitment@example.com"}, msgs[0].To)
	assert.Contains(t, msgs[0].Subject, "Jane")
	assert.Contains(t, msgs[0].HTML, "Analyst")
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	testCases := []struct {
		name    string
		params  subm.SubmitParams
		errCode string
	}{
		{
			name:    "unknown kind",
			params:  subm.SubmitParams{Kind: "blog"},
			errCode: subm.ErrCodeUnknownKind,
		},
		{
			name: "missing required field",
			params: subm.SubmitParams{
				Kind: subm.KindEnquiry,
				Payload: subm.Payload{
					{Key: "fullName", Value: "Sam"},
					{Key: "email", Value: "sam@x.com"},
				},
			},
			errCode: subm.ErrCodeValidation,
		},
		{
			name: "missing mandatory attachment",
			params: subm.SubmitParams{
				Kind:    subm.KindCareer,
				Payload: careerPayload(),
			},
			errCode: subm.ErrCodeValidation,
		},
		{
			name: "attachment not in store",
			params: subm.SubmitParams{
				Kind:          subm.KindCareer,
				Payload:       careerPayload(),
				AttachmentRef: "careers/never-saved.pdf",
			},
			errCode: subm.ErrCodeValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.srvc.Submit(ctx, tc.params)
			require.Error(t, err)
			srvcErr := &srvcerror.Error{}
			require.ErrorAs(t, err, &srvcErr)
			assert.Equal(t, tc.errCode, srvcErr.ErrorCode())
		})
	}

	// nothing persisted, nothing scheduled
	res, err := env.srvc.ListSubms(ctx, subm.ListFilter{Kind: subm.KindCareer})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, env.notifier.messages())
}

func TestEnquiryWithoutAttachment(t *testing.T) {
	env := newTestEnv(t, nil)

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind: subm.KindEnquiry,
		Payload: subm.Payload{
			{Key: "fullName", Value: "Sam"},
			{Key: "email", Value: "sam@x.com"},
			{Key: "phone", Value: "12345"},
			{Key: "message", Value: "Need a quote"},
			{Key: "serviceName", Value: "warehousing"},
		},
	})
	require.NoError(t, err)

	final := waitForTerminal(t, env.repo, s.ID)
	assert.Equal(t, subm.StatusCompleted, final.ProcessingStatus)

	msgs := env.notifier.messages()
	require.Len(t, msgs, 1)
	assert.Empty(t, msgs[0].Attachments)
	assert.Equal(t, "[New Enquiry] - warehousing", msgs[0].Subject)
}

func TestDrainWaitsForInFlightUnits(t *testing.T) {
	env := newTestEnv(t, func(o *subm.Options) {
		o.Notifier = &stubNotifier{delay: 100 * time.Millisecond}
	})

	s, err := env.srvc.Submit(context.Background(), subm.SubmitParams{
		Kind:          subm.KindCareer,
		Payload:       careerPayload(),
		AttachmentRef: saveResume(t, env.files),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, env.srvc.Drain(ctx))

	stored, err := env.repo.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, stored.ProcessingStatus.Terminal(),
		"drain must not return while a unit is still running")
}
