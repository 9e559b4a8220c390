package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"distviz/domain/distribution"
	"distviz/internal/controller"
	"distviz/internal/errors"
	"distviz/internal/render"
	"distviz/internal/scheduler"
	uimw "distviz/ui/middleware"
)

// catalogEntry is one card on the index page
type catalogEntry struct {
	Kind    string
	Name    string
	Summary string
	Support string
}

// paramView is one slider on a distribution page
type paramView struct {
	Name    string
	Symbol  string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Value   float64
	Display string
	Valid   string
	Bounds  []string
	Error   string
}

type distributionPage struct {
	Kind        string
	Name        string
	Description string
	Params      []paramView
	Caption     string
	Legend      string
	Mean        string
	Variance    string
	Width       int
	Joint       bool
	Surface     bool
	ChartURL    string
	APIBase     string
	Errors      []string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	models := distribution.All()
	entries := make([]catalogEntry, 0, len(models))
	for _, m := range models {
		spec := m.Spec()
		entries = append(entries, catalogEntry{
			Kind:    spec.Kind.String(),
			Name:    spec.Name,
			Summary: spec.Summary,
			Support: spec.Support.String(),
		})
	}
	a.renderTemplate(w, http.StatusOK, "index.html", map[string]interface{}{
		"Title":         "Distributions",
		"Distributions": entries,
	})
}

func (a *App) handleDistribution(w http.ResponseWriter, r *http.Request) {
	m, _ := uimw.Distribution(r.Context())
	spec := m.Spec()
	q := r.URL.Query()

	width, err := a.width(q)
	if err != nil {
		a.httpError(w, err)
		return
	}
	ctrl, err := controller.New(m)
	if err != nil {
		a.httpError(w, err)
		return
	}
	rejected := applyQuery(ctrl, q)

	v := ctrl.Validated()
	p := v.Params()
	_, joint := m.(distribution.JointModel)
	page := distributionPage{
		Kind:        spec.Kind.String(),
		Name:        spec.Name,
		Description: spec.Description(),
		Caption:     distribution.Caption(v),
		Legend:      distribution.Legend(spec, p),
		Mean:        m.Mean(p).String(),
		Variance:    m.Variance(p).String(),
		Width:       width,
		Joint:       joint,
		Surface:     joint && surfaceRequested(q),
		APIBase:     a.config.APIBase,
	}
	for _, param := range spec.Parameters {
		pv := paramView{
			Name:    param.Name,
			Symbol:  param.Symbol,
			Label:   param.Label,
			Min:     param.Slider.Min,
			Max:     param.Slider.Max,
			Step:    param.Slider.Step,
			Value:   p[param.Name],
			Display: param.Format(p[param.Name]),
			Valid:   param.Valid.String(),
		}
		for _, b := range spec.Bounds {
			if b.Param == param.Name {
				pv.Bounds = append(pv.Bounds, spec.Parameters[indexOf(spec, b.AtMost)].Symbol)
			}
		}
		if err, ok := rejected[param.Name]; ok {
			pv.Error = err.Error()
			page.Errors = append(page.Errors, err.Error())
		}
		page.Params = append(page.Params, pv)
	}
	page.ChartURL = chartURL(spec, p, width, page.Surface)

	status := http.StatusOK
	if len(rejected) > 0 {
		status = errors.HTTPStatus(errors.Classify(firstRejection(spec, rejected)).Code)
	}
	a.renderTemplate(w, status, "distribution.html", page)
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	m, _ := uimw.Distribution(r.Context())
	q := r.URL.Query()

	width, err := a.width(q)
	if err != nil {
		a.httpError(w, err)
		return
	}
	format := a.config.Format
	if f := q.Get("format"); f != "" {
		if format, err = render.ParseFormat(f); err != nil {
			a.httpError(w, errors.InvalidInput(err.Error()))
			return
		}
	}
	ctrl, err := controller.New(m)
	if err != nil {
		a.httpError(w, err)
		return
	}
	if rejected := applyQuery(ctrl, q); len(rejected) > 0 {
		a.httpError(w, firstRejection(m.Spec(), rejected))
		return
	}

	data, frame, err := a.render(ctrl, width, format, surfaceRequested(q))
	if err != nil {
		a.httpError(w, err)
		return
	}

	etag := `"` + frame.Hash.Short() + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Chart-Caption", url.QueryEscape(frame.Caption))
	if _, err := w.Write(data); err != nil {
		a.logger.Warn("Error writing chart response: %v", err)
	}
}

// render runs one stateless pass of the pipeline at the given width
func (a *App) render(ctrl *controller.Controller, width int, format render.Format, surface bool) ([]byte, scheduler.Frame, error) {
	target := render.NewTarget(render.FixedWidth(width), format)
	sched := scheduler.New(ctrl, target, scheduler.Options{Resolution: a.config.Resolution, Surface: surface})
	sched.SetLogger(a.logger)
	if err := sched.Recompute(); err != nil {
		return nil, scheduler.Frame{}, err
	}
	frame, ok := sched.Frame()
	if !ok {
		return nil, frame, fmt.Errorf("%w: container width %d", render.ErrRenderUnavailable, width)
	}
	return target.Frame(), frame, nil
}

func (a *App) width(q url.Values) (int, error) {
	raw := q.Get("width")
	if raw == "" {
		return a.config.DefaultWidth, nil
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width < 0 || width > render.MaxWidth {
		return 0, errors.InvalidInput(fmt.Sprintf("width must be an integer in [0, %d], got %q", render.MaxWidth, raw))
	}
	return width, nil
}

func (a *App) httpError(w http.ResponseWriter, err error) {
	appErr := errors.Classify(err)
	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[UI] %v", err)
	}
	http.Error(w, appErr.Message, status)
}

// applyQuery sets every parameter present in q, in declaration order so a
// page link reproduces the state it was generated from. Rejected edits leave
// the parameter at its previous value.
func applyQuery(ctrl *controller.Controller, q url.Values) map[string]error {
	rejected := make(map[string]error)
	for _, param := range ctrl.Model().Spec().Parameters {
		raw, ok := q[param.Name]
		if !ok || len(raw) == 0 {
			continue
		}
		if _, err := ctrl.Set(param.Name, raw[len(raw)-1]); err != nil {
			rejected[param.Name] = err
		}
	}
	return rejected
}

func firstRejection(spec *distribution.Spec, rejected map[string]error) error {
	for _, param := range spec.Parameters {
		if err, ok := rejected[param.Name]; ok {
			return err
		}
	}
	return nil
}

func surfaceRequested(q url.Values) bool {
	on, _ := strconv.ParseBool(q.Get("surface"))
	return on
}

func chartURL(spec *distribution.Spec, p distribution.Params, width int, surface bool) string {
	q := url.Values{}
	for _, param := range spec.Parameters {
		q.Set(param.Name, strconv.FormatFloat(p[param.Name], 'g', -1, 64))
	}
	q.Set("width", strconv.Itoa(width))
	if surface {
		q.Set("surface", "true")
	}
	return "/distributions/" + strings.ToLower(spec.Kind.String()) + "/chart?" + q.Encode()
}

func indexOf(spec *distribution.Spec, name string) int {
	for i, p := range spec.Parameters {
		if p.Name == name {
			return i
		}
	}
	return 0
}
