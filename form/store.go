package form

import (
	"context"
	"sync"
	"time"

	"taxform/models"

	"github.com/patrickmn/go-cache"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// SessionStore keeps one form per browser session as a msgpack snapshot in
// a TTL cache. Updates to the same session are serialized; different
// sessions never block each other.
type SessionStore struct {
	cache     *cache.Cache
	countries []string
	locks     sync.Map // session id -> *sync.Mutex
}

// NewSessionStore creates a store whose idle sessions expire after ttl.
func NewSessionStore(ttl time.Duration, countries []string) *SessionStore {
	s := &SessionStore{
		cache:     cache.New(ttl, 2*ttl),
		countries: countries,
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.dropLock(id)
		logger.Debug("Form session expired", "session_id", id)
	})
	return s
}

// Update applies fn to the session's controller and saves the result. A
// missing or expired session starts as an empty form.
func (s *SessionStore) Update(id string, fn func(c *Controller) error) (View, error) {
	if id == "" {
		return View{}, serr.New("session id is required")
	}

	mu := s.lock(id)
	defer mu.Unlock()

	c, err := s.load(id)
	if err != nil {
		return View{}, err
	}
	if fn != nil {
		if err := fn(c); err != nil {
			return c.View(), err
		}
	}
	if err := s.save(id, c); err != nil {
		return View{}, err
	}
	return c.View(), nil
}

// View returns the session's form without changing it.
func (s *SessionStore) View(id string) (View, error) {
	return s.Update(id, nil)
}

// Reset drops the session's form.
func (s *SessionStore) Reset(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}

// lock returns the session's mutex, locked. A mutex that was dropped from
// the map while we waited on it is released and the lookup retried, so at
// most one holder per id exists at a time.
func (s *SessionStore) lock(id string) *sync.Mutex {
	for {
		v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
		mu := v.(*sync.Mutex)
		mu.Lock()
		if cur, ok := s.locks.Load(id); ok && cur == v {
			return mu
		}
		mu.Unlock()
	}
}

// dropLock forgets an idle session's mutex. A mutex that is held stays in
// the map; its holder saves the session again anyway.
func (s *SessionStore) dropLock(id string) {
	v, ok := s.locks.Load(id)
	if !ok {
		return
	}
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return
	}
	s.locks.CompareAndDelete(id, v)
	mu.Unlock()
}

func (s *SessionStore) load(id string) (*Controller, error) {
	c := NewController(s.countries)

	raw, found := s.cache.Get(id)
	if !found {
		return c, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		return nil, serr.New("unexpected session entry type")
	}

	var st State
	if err := models.DecodeMsgPack(b, &st); err != nil {
		return nil, serr.Wrap(err, "failed to restore form session")
	}
	c.Restore(st)
	return c, nil
}

func (s *SessionStore) save(id string, c *Controller) error {
	b, err := models.EncodeMsgPack(c.Snapshot())
	if err != nil {
		return serr.Wrap(err, "failed to save form session")
	}
	s.cache.SetDefault(id, b)
	return nil
}

// Submit runs the submission state machine for a session. The session is
// marked Submitting and saved before the round trip, and the result is
// recorded on the latest state afterwards, so edits made while the request
// is pending are kept. sent is false when validation blocked the request or
// one was already pending.
func (s *SessionStore) Submit(ctx context.Context, id string, sub models.Submitter) (v View, sent bool, err error) {
	var payload models.Submission
	v, err = s.Update(id, func(c *Controller) error {
		payload, sent = c.BeginSubmit()
		return nil
	})
	if err != nil || !sent {
		return v, false, err
	}

	result, subErr := sub.Submit(ctx, payload)
	if subErr != nil {
		logger.LogErr(subErr, "submission got no response", "session_id", id)
		result = models.NewOfflineResult()
	}

	v, err = s.finishSubmit(id, payload, result)
	return v, true, err
}

// finishSubmit records result on the session. When the session expired or
// could not be read during the round trip, the form is rebuilt from the
// submitted payload so the result is still shown and the session is never
// left Submitting.
func (s *SessionStore) finishSubmit(id string, payload models.Submission, result models.SubmissionResult) (View, error) {
	mu := s.lock(id)
	defer mu.Unlock()

	c, err := s.load(id)
	if err != nil {
		logger.LogErr(err, "replacing unreadable form session", "session_id", id)
	}
	if err != nil || c.Status() != StatusSubmitting {
		c = NewController(s.countries)
		c.SetUsername(payload.Username)
		c.setCountry(payload.Country)
		c.SetTaxID(payload.TaxID)
		c.Validate()
		c.status = StatusSubmitting
	}
	c.FinishSubmit(result)

	if err := s.save(id, c); err != nil {
		s.cache.Delete(id)
		return c.View(), err
	}
	return c.View(), nil
}
