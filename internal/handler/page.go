package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/finopsmind/costmeter/internal/apierrors"
	"github.com/finopsmind/costmeter/internal/correlation"
	"github.com/finopsmind/costmeter/internal/costclient"
	"github.com/finopsmind/costmeter/internal/form"
	"github.com/finopsmind/costmeter/internal/model"
	"github.com/finopsmind/costmeter/internal/payload"
	"github.com/finopsmind/costmeter/internal/render"
	"github.com/finopsmind/costmeter/internal/session"
)

// ForecastHandler serves the calculator page: the input form, the submit
// action, the CSV export and the session reset.
type ForecastHandler struct {
	client   costclient.Forecaster
	sessions *session.Store
	logger   *slog.Logger
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(client costclient.Forecaster, sessions *session.Store, logger *slog.Logger) *ForecastHandler {
	return &ForecastHandler{client: client, sessions: sessions, logger: logger}
}

type notice struct {
	Kind    string
	Message string
}

type fieldView struct {
	Name     string
	Label    string
	Control  string
	Value    string
	Checked  bool
	Options  []string
	Min, Max int
}

type resultView struct {
	render.View
	Bars           []render.Bar
	ResourceTable  template.HTML
	BreakdownTable template.HTML
}

type pageData struct {
	Notice   *notice
	Fields   []fieldView
	InFlight bool
	Result   *resultView
}

// Page handles GET /
func (h *ForecastHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	h.renderPage(w, r, http.StatusOK, sess.State(), sess, nil)
}

// UpdateForm handles POST /form. It stores the edited values and redraws
// the form so fields appear or disappear with the new answers.
func (h *ForecastHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, sess.State(), sess, errorNotice("The form could not be read."))
		return
	}

	state, err := form.Decode(sess.State(), r.PostForm)
	if err != nil {
		h.renderPage(w, r, http.StatusUnprocessableEntity, sess.State(), sess, fieldNotice(err))
		return
	}

	sess.SetState(state)
	h.renderPage(w, r, http.StatusOK, state, sess, nil)
}

// Submit handles POST /forecast. One request per session may be in flight;
// a failure keeps whatever results were already on screen.
func (h *ForecastHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	logger := correlation.Logger(r.Context(), h.logger).With("session_id", sess.ID())

	if err := r.ParseForm(); err != nil {
		h.renderPage(w, r, http.StatusBadRequest, sess.State(), sess, errorNotice("The form could not be read."))
		return
	}

	state, err := form.Decode(sess.State(), r.PostForm)
	if err != nil {
		h.renderPage(w, r, http.StatusUnprocessableEntity, sess.State(), sess, fieldNotice(err))
		return
	}

	ctx, ok := sess.Begin(r.Context(), state)
	if !ok {
		h.renderPage(w, r, http.StatusConflict, state, sess,
			&notice{Kind: "info", Message: "A forecast is already being calculated. Please wait for it to finish."})
		return
	}

	p := payload.Build(state)
	result, err := h.client.Forecast(ctx, &p)

	if ctx.Err() != nil {
		sess.Complete(ctx, nil)
		logger.Info("forecast abandoned", "reason", context.Cause(ctx))
		return
	}

	if err != nil {
		sess.Complete(ctx, nil)
		logger.Warn("forecast failed", "error", err)
		h.renderPage(w, r, http.StatusBadGateway, state, sess, errorNotice(apierrors.FromError(err).Message+". Please try again later."))
		return
	}

	if !sess.Complete(ctx, result) {
		logger.Info("forecast discarded after session teardown")
		return
	}

	logger.Info("forecast completed", "pattern", state.IntegrationPattern, "total_cost", result.TotalCost.String())
	h.renderPage(w, r, http.StatusOK, state, sess, nil)
}

// Export handles GET /forecast/export.csv. It writes the resource cost table
// of the result already on screen; the cost service is not called again.
func (h *ForecastHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	result := sess.Result()
	if result == nil {
		http.Error(w, "no forecast to export", http.StatusNotFound)
		return
	}

	view := render.Render(result)
	w.Header().Set("Content-Type", render.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, render.ExportFilename))
	if err := render.WriteCSV(w, view.ResourceCosts); err != nil {
		correlation.Logger(r.Context(), h.logger).Error("failed to write export", "error", err)
	}
}

// Reset handles POST /session/reset: the session is torn down, abandoning
// any forecast still in flight, and the browser starts over.
func (h *ForecastHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	h.sessions.Delete(sess.ID())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ForecastHandler) session(r *http.Request) *session.Session {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess
	}
	// Routes are mounted behind the session middleware; this keeps a
	// misconfigured router from panicking.
	return h.sessions.Create()
}

func (h *ForecastHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, state model.InputState, sess *session.Session, n *notice) {
	data := pageData{
		Notice:   n,
		Fields:   fieldViews(state),
		InFlight: sess.InFlight(),
	}
	if res := sess.Result(); res != nil {
		data.Result = newResultView(render.Render(res))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		correlation.Logger(r.Context(), h.logger).Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func fieldViews(state model.InputState) []fieldView {
	visible := form.VisibleFields(state)
	views := make([]fieldView, 0, len(visible))
	for _, f := range visible {
		v := fieldView{
			Name:    string(f),
			Label:   form.Label(f),
			Control: string(form.ControlOf(f)),
			Value:   form.Value(state, f),
			Options: form.Options(f),
		}
		v.Checked = v.Control == string(form.ControlCheckbox) && v.Value == "true"
		v.Min, v.Max, _ = form.Bounds(f)
		views = append(views, v)
	}
	return views
}

func newResultView(v render.View) *resultView {
	return &resultView{
		View:           v,
		Bars:           v.Bars(),
		ResourceTable:  template.HTML(render.ResourceTableHTML(v)),
		BreakdownTable: template.HTML(render.BreakdownTableHTML(v)),
	}
}

func errorNotice(msg string) *notice {
	return &notice{Kind: "error", Message: msg}
}

func fieldNotice(err error) *notice {
	var fe *form.FieldError
	if errors.As(err, &fe) {
		return errorNotice(fmt.Sprintf("%s %s.", form.Label(fe.Field), fe.Message))
	}
	return errorNotice(err.Error())
}
