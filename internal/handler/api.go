package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/finopsmind/costmeter/internal/apierrors"
	"github.com/finopsmind/costmeter/internal/correlation"
	"github.com/finopsmind/costmeter/internal/costclient"
	"github.com/finopsmind/costmeter/internal/form"
	"github.com/finopsmind/costmeter/internal/model"
	"github.com/finopsmind/costmeter/internal/payload"
	"github.com/finopsmind/costmeter/internal/render"
)

// APIHandler exposes the calculator as JSON for scripted callers. It keeps
// no session state.
type APIHandler struct {
	client costclient.Forecaster
	logger *slog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(client costclient.Forecaster, logger *slog.Logger) *APIHandler {
	return &APIHandler{client: client, logger: logger}
}

// FieldsResponse lists the fields that apply to a state and the payload it
// would produce.
type FieldsResponse struct {
	Visible []form.Field  `json:"visible"`
	Payload model.Payload `json:"payload"`
}

// Forecast handles POST /api/v1/forecast. Keys missing from the body take
// their form defaults. Send Accept: text/plain (or ?format=text) for a
// terminal rendering instead of JSON.
func (h *APIHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	state, ok := h.decodeState(w, r)
	if !ok {
		return
	}

	p := payload.Build(state)
	result, err := h.client.Forecast(r.Context(), &p)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		correlation.Logger(r.Context(), h.logger).Warn("forecast failed", "error", err)
		apierrors.FromError(err).Write(w, r)
		return
	}

	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, render.Text(render.Render(result)))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Fields handles POST /api/v1/form/fields.
func (h *APIHandler) Fields(w http.ResponseWriter, r *http.Request) {
	state, ok := h.decodeState(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, FieldsResponse{
		Visible: form.VisibleFields(state),
		Payload: payload.Build(state),
	})
}

func (h *APIHandler) decodeState(w http.ResponseWriter, r *http.Request) (model.InputState, bool) {
	state := form.Defaults()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		apierrors.NewBadRequestError("invalid request body: " + err.Error()).Write(w, r)
		return state, false
	}

	if err := form.Validate(state); err != nil {
		apierrors.FromError(err).Write(w, r)
		return state, false
	}

	return state, true
}
