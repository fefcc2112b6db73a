package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sant0-9/divimap/internal/geo"
	"github.com/sant0-9/divimap/internal/intent"
	"github.com/sant0-9/divimap/internal/mapview"
	"github.com/sant0-9/divimap/internal/session"
)

type viewResponse struct {
	Center    geo.LatLon       `json:"center"`
	Zoom      int              `json:"zoom"`
	Bounds    *geo.Bounds      `json:"bounds,omitempty"`
	Overlay   int              `json:"overlay"`
	Selected  int              `json:"selected"`
	Style     mapview.Style    `json:"style"`
	Status    session.Status   `json:"status"`
	Busy      bool             `json:"busy"`
	LastApply *mapview.Summary `json:"last,omitempty"`
}

type instructionRequest struct {
	Instruction string `json:"instruction"`
}

type instructionResponse struct {
	ID      string          `json:"id"`
	Summary mapview.Summary `json:"summary"`
	Status  session.Status  `json:"status"`
	View    viewResponse    `json:"view"`
}

type errorResponse struct {
	Error  string         `json:"error"`
	Kind   string         `json:"kind"`
	Status session.Status `json:"status"`
}

type featureCollection struct {
	Type     string         `json:"type"`
	Features []*geo.Feature `json:"features"`
	Style    mapview.Style  `json:"style"`
}

func (s *Server) view() viewResponse {
	st := s.sess.State()
	v := viewResponse{
		Center:   st.Center,
		Zoom:     st.Zoom,
		Overlay:  len(st.Overlay),
		Selected: len(st.Selection),
		Style:    st.OverlayStyle,
		Status:   s.sess.Status(),
		Busy:     s.sess.Busy(),
	}
	if b := st.Bounds(); b.Valid() {
		v.Bounds = &b
	}
	if last, ok := s.sess.Last(); ok {
		v.LastApply = &last
	}
	return v
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleOverlay(w http.ResponseWriter, _ *http.Request) {
	st := s.sess.State()
	features := st.Overlay
	if features == nil {
		features = []*geo.Feature{}
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(featureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Style:    st.OverlayStyle,
	})
}

func (s *Server) handleInstruction(w http.ResponseWriter, r *http.Request) {
	var req instructionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid request body: " + err.Error(),
			Kind:   "bad_request",
			Status: session.StatusGeneric,
		})
		return
	}

	out, err := s.sess.Submit(r.Context(), req.Instruction)
	if err != nil {
		writeJSON(w, statusCode(err), errorResponse{
			Error:  err.Error(),
			Kind:   session.ErrorKind(err),
			Status: session.StatusFor(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, instructionResponse{
		ID:      out.ID,
		Summary: out.Summary,
		Status:  out.Status,
		View:    s.view(),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.sess.Clear()
	writeJSON(w, http.StatusOK, s.view())
}

// statusCode maps a Submit error onto an HTTP status.
func statusCode(err error) int {
	var (
		te  *intent.TransportError
		ee  *intent.EmptyResponseError
		pe  *intent.ParseError
		se  *intent.SchemaError
		ure *mapview.UnsupportedReferenceError
	)
	switch {
	case errors.Is(err, intent.ErrEmptyInstruction):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &te), errors.As(err, &ee):
		return http.StatusBadGateway
	case errors.As(err, &pe), errors.As(err, &se), errors.As(err, &ure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
