package form

import (
	"context"
	"testing"
	"time"

	"taxform/models"

	"github.com/stretchr/testify/require"
)

// blockingSubmitter holds the round trip open until release is closed.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	result  models.SubmissionResult
}

func (b *blockingSubmitter) Submit(_ context.Context, _ models.Submission) (models.SubmissionResult, error) {
	close(b.started)
	<-b.release
	return b.result, nil
}

func newTestStore() *SessionStore {
	return NewSessionStore(time.Minute, models.Countries())
}

func TestSessionStore_NewSessionIsEmpty(t *testing.T) {
	s := newTestStore()

	v, err := s.View("abc")

	require.NoError(t, err)
	require.Equal(t, StatusIdle, v.Status)
	require.Empty(t, v.Username.Value)
	require.Equal(t, 1, s.Count())
}

func TestSessionStore_RequiresID(t *testing.T) {
	s := newTestStore()

	_, err := s.View("")

	require.Error(t, err)
}

func TestSessionStore_UpdatesPersist(t *testing.T) {
	s := newTestStore()

	_, err := s.Update("abc", func(c *Controller) error {
		c.TypeCountry("United")
		c.CountryKey(KeyDown)
		c.CountryKey(KeyDown)
		return nil
	})
	require.NoError(t, err)

	v, err := s.View("abc")
	require.NoError(t, err)
	require.Equal(t, "United Kingdom", v.Country.Value)
	require.Equal(t, 1, v.Active)
	require.Len(t, v.Suggestions, 3)
}

func TestSessionStore_SessionsAreIsolated(t *testing.T) {
	s := newTestStore()

	_, err := s.Update("one", func(c *Controller) error {
		c.SetUsername("Cyril")
		return nil
	})
	require.NoError(t, err)

	v, err := s.View("two")
	require.NoError(t, err)
	require.Empty(t, v.Username.Value)
}

func TestSessionStore_EventErrorIsNotSaved(t *testing.T) {
	s := newTestStore()

	_, err := s.Update("abc", func(c *Controller) error {
		c.SetUsername("Pam")
		return Event{Type: "bogus"}.Apply(c)
	})
	require.Error(t, err)

	v, err := s.View("abc")
	require.NoError(t, err)
	require.Empty(t, v.Username.Value)
}

func TestSessionStore_Reset(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("abc", func(c *Controller) error {
		c.SetUsername("Krieger")
		return nil
	})
	require.NoError(t, err)

	s.Reset("abc")

	v, err := s.View("abc")
	require.NoError(t, err)
	require.Empty(t, v.Username.Value)
}

func TestSessionStore_SubmitInvalidSendsNothing(t *testing.T) {
	s := newTestStore()
	sub := &fakeSubmitter{}

	v, sent, err := s.Submit(context.Background(), "abc", sub)

	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, sub.got)
	require.Equal(t, "is-invalid", v.Username.ValidityClass())
}

func TestSessionStore_SubmitOffline(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("abc", func(c *Controller) error {
		fillValidUS(c)
		return nil
	})
	require.NoError(t, err)

	v, sent, err := s.Submit(context.Background(), "abc", &fakeSubmitter{err: context.DeadlineExceeded})

	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, StatusOffline, v.Status)
	require.Equal(t, models.OfflineMessage, v.Result.Message)
}

func TestSessionStore_EditsDuringPendingSubmitSurvive(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("abc", func(c *Controller) error {
		fillValidUS(c)
		return nil
	})
	require.NoError(t, err)

	sub := &blockingSubmitter{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  models.NewResponseResult(200, "Success!"),
	}

	type outcome struct {
		v    View
		sent bool
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		v, sent, err := s.Submit(context.Background(), "abc", sub)
		done <- outcome{v, sent, err}
	}()

	<-sub.started

	// The session is not locked while the request is pending
	v, err := s.Update("abc", func(c *Controller) error {
		c.SetUsername("Sterling Malory Archer")
		return nil
	})
	require.NoError(t, err)
	require.True(t, v.Pending())

	// A second submit while pending is refused
	_, sent, err := s.Submit(context.Background(), "abc", &fakeSubmitter{})
	require.NoError(t, err)
	require.False(t, sent)

	close(sub.release)
	out := <-done

	require.NoError(t, out.err)
	require.True(t, out.sent)
	require.Equal(t, StatusSuccess, out.v.Status)
	require.Equal(t, "Success!", out.v.Result.Message)
	require.Equal(t, "Sterling Malory Archer", out.v.Username.Value)
}

func TestSessionStore_ExpiryDuringSubmitKeepsResult(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("abc", func(c *Controller) error {
		fillValidUS(c)
		return nil
	})
	require.NoError(t, err)

	sub := &blockingSubmitter{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  models.NewResponseResult(200, "Success!"),
	}
	done := make(chan View, 1)
	go func() {
		v, _, err := s.Submit(context.Background(), "abc", sub)
		if err != nil {
			t.Errorf("submit: %v", err)
		}
		done <- v
	}()

	<-sub.started
	s.Reset("abc")
	close(sub.release)
	v := <-done

	require.Equal(t, StatusSuccess, v.Status)
	require.Equal(t, "Success!", v.Result.Message)
	require.Equal(t, "Sterling Archer", v.Username.Value)

	// The session is usable for another submission
	_, sent, err := s.Submit(context.Background(), "abc", &fakeSubmitter{})
	require.NoError(t, err)
	require.True(t, sent)
}

func TestSessionStore_UnreadableSessionDuringSubmitIsReplaced(t *testing.T) {
	s := newTestStore()
	_, err := s.Update("abc", func(c *Controller) error {
		fillValidUS(c)
		return nil
	})
	require.NoError(t, err)

	sub := &blockingSubmitter{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  models.NewResponseResult(404, "Error!"),
	}
	done := make(chan View, 1)
	go func() {
		v, _, err := s.Submit(context.Background(), "abc", sub)
		if err != nil {
			t.Errorf("submit: %v", err)
		}
		done <- v
	}()

	<-sub.started
	s.cache.SetDefault("abc", "not a snapshot")
	close(sub.release)
	v := <-done

	require.Equal(t, StatusError, v.Status)

	v, err = s.View("abc")
	require.NoError(t, err)
	require.Equal(t, StatusError, v.Status, "the stored session is no longer Submitting")
}

func TestSessionStore_LockSurvivesEvictionWhileHeld(t *testing.T) {
	s := newTestStore()

	held := s.lock("abc")
	s.dropLock("abc")

	acquired := make(chan struct{})
	go func() {
		mu := s.lock("abc")
		mu.Unlock()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("a second holder got the session lock")
	case <-time.After(50 * time.Millisecond):
	}

	held.Unlock()
	<-acquired

	s.dropLock("abc")
	_, ok := s.locks.Load("abc")
	require.False(t, ok, "an idle lock is dropped")
}
