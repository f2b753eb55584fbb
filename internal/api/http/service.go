package http

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/quizforge/quizforge/internal/events"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
	"github.com/quizforge/quizforge/internal/storage"
)

// Service owns the loaded dataset and one session engine per active session.
// A dataset load failure puts the service into a retryable error state: the
// API stays up, quiz and session routes answer 503 until a reload succeeds.
type Service struct {
	mu sync.RWMutex

	data    quiz.QuizData
	loadErr error

	blobs      storage.BlobStore
	datasetKey string

	stores  session.Provider
	engines map[string]*session.Engine

	events *events.Repo // optional
	log    *zap.Logger
}

func NewService(blobs storage.BlobStore, datasetKey string, stores session.Provider, ev *events.Repo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		blobs:      blobs,
		datasetKey: datasetKey,
		stores:     stores,
		engines:    map[string]*session.Engine{},
		events:     ev,
		log:        log,
	}
}

// Load (re)reads the dataset from the blob store. On failure the previous
// dataset, if any, is discarded: the service reports the error rather than
// silently serving stale questions. Cached engines are dropped either way so
// they rebind to the fresh question list.
func (s *Service) Load() error {
	var data quiz.QuizData
	rc, err := s.blobs.Get(s.datasetKey)
	if err == nil {
		data, err = quiz.Decode(rc)
		rc.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines = map[string]*session.Engine{}
	if err != nil {
		s.data = quiz.QuizData{}
		s.loadErr = fmt.Errorf("dataset %q: %w", s.datasetKey, err)
		s.log.Error("dataset load failed", zap.String("key", s.datasetKey), zap.Error(err))
		return s.loadErr
	}
	s.data = data
	s.loadErr = nil
	s.log.Info("dataset loaded",
		zap.String("key", s.datasetKey),
		zap.Int("questions", len(data.Questions)),
		zap.Bool("scoring", data.ScoringEnabled()))
	return nil
}

// Dataset returns the loaded dataset, or the load error.
func (s *Service) Dataset() (quiz.QuizData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return quiz.QuizData{}, s.loadErr
	}
	return s.data, nil
}

// withEngine runs fn against the engine for sid, creating and restoring it on
// first touch. Engine calls are serialized service-wide; the engines
// themselves are not safe for concurrent use.
func (s *Service) withEngine(sid string, fn func(e *session.Engine, data quiz.QuizData)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	e, ok := s.engines[sid]
	if !ok {
		e = session.NewEngine(s.data, s.stores.Session(sid), s.log)
		e.Restore()
		s.engines[sid] = e
	}
	fn(e, s.data)
	return nil
}

// record appends a session event; failures are logged and dropped.
func (s *Service) record(ctx context.Context, typ, sid string, data any) {
	if s.events == nil {
		return
	}
	payload := "{}"
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}
	if err := s.events.Append(ctx, events.Event{Type: typ, Key: sid, DataJSON: payload}); err != nil {
		s.log.Warn("event not recorded", zap.String("type", typ), zap.Error(err))
	}
}
