package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/events"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
)

// statePayload is the session state as the front end sees it.
type statePayload struct {
	CurrentIndex      int             `json:"currentIndex"`
	Started           bool            `json:"started"`
	Completed         bool            `json:"completed"`
	Answers           map[int]string  `json:"answers"`
	Progress          int             `json:"progress"`
	AnsweredCount     int             `json:"answeredCount"`
	TotalQuestions    int             `json:"totalQuestions"`
	UnansweredIndices []int           `json:"unansweredIndices"`
	ReviewOnly        bool            `json:"reviewOnly"`
	Score             *session.Result `json:"score,omitempty"`
}

func snapshot(e *session.Engine, scoring bool) statePayload {
	p := statePayload{
		CurrentIndex:      e.CurrentIndex(),
		Started:           e.Started(),
		Completed:         e.Completed(),
		Answers:           e.Answers(),
		Progress:          e.Progress(),
		AnsweredCount:     e.AnsweredCount(),
		TotalQuestions:    e.Len(),
		UnansweredIndices: e.Unanswered(),
		ReviewOnly:        !scoring,
	}
	if e.Completed() {
		if res, ok := e.ScoreResult(); ok {
			p.Score = &res
		}
	}
	return p
}

// NewSessionHandler mints an anonymous session and returns its bearer token.
func NewSessionHandler(a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := uuid.NewString()
		tok, err := a.Issue(sid)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"session_id": sid, "access_token": tok})
	}
}

// GetQuizHandler serves the dataset with correct labels stripped.
func GetQuizHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Dataset()
		if err != nil {
			http.Error(w, "quiz dataset unavailable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, quiz.Redacted(data))
	}
}

// StateHandler returns the caller's current session state.
func StateHandler(s *Service) http.HandlerFunc {
	return stateAction(s, "", func(e *session.Engine, req actionRequest) {})
}

func StartHandler(s *Service) http.HandlerFunc {
	return stateAction(s, events.TypeSessionStarted, func(e *session.Engine, req actionRequest) {
		e.Start()
	})
}

func AnswerHandler(s *Service) http.HandlerFunc {
	return stateAction(s, events.TypeAnswerSelected, func(e *session.Engine, req actionRequest) {
		e.SelectAnswer(req.Label)
	})
}

func GotoHandler(s *Service) http.HandlerFunc {
	return stateAction(s, "", func(e *session.Engine, req actionRequest) {
		if req.Index != nil {
			e.GoTo(*req.Index)
		}
	})
}

func NextHandler(s *Service) http.HandlerFunc {
	return stateAction(s, "", func(e *session.Engine, req actionRequest) { e.Next() })
}

func PreviousHandler(s *Service) http.HandlerFunc {
	return stateAction(s, "", func(e *session.Engine, req actionRequest) { e.Previous() })
}

func SubmitHandler(s *Service) http.HandlerFunc {
	return stateAction(s, events.TypeSessionSubmitted, func(e *session.Engine, req actionRequest) {
		e.Submit()
	})
}

func RestartHandler(s *Service) http.HandlerFunc {
	return stateAction(s, events.TypeSessionRestarted, func(e *session.Engine, req actionRequest) {
		e.Restart()
	})
}

// ReloadHandler re-reads the dataset; this is the retry action for a failed
// load. Admin-gated in the router.
func ReloadHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Load(); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		data, _ := s.Dataset()
		writeJSON(w, map[string]any{"questions": len(data.Questions), "scoring": data.ScoringEnabled()})
	}
}

type actionRequest struct {
	Label string `json:"label,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// stateAction decodes the optional request body, applies the mutation, and
// answers with the resulting state. Engine misuse (bad index, bad label,
// wrong lifecycle state) is a silent no-op: the response is simply the
// unchanged state.
func stateAction(s *Service, eventType string, apply func(e *session.Engine, req actionRequest)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := auth.SessionID(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusUnauthorized)
			return
		}
		var req actionRequest
		if r.Body != nil {
			// a missing or empty body is fine for bodyless actions
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		var p statePayload
		err := s.withEngine(sid, func(e *session.Engine, data quiz.QuizData) {
			apply(e, req)
			p = snapshot(e, data.ScoringEnabled())
		})
		if err != nil {
			http.Error(w, "quiz dataset unavailable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		if eventType != "" {
			s.record(r.Context(), eventType, sid, req)
		}
		writeJSON(w, p)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
