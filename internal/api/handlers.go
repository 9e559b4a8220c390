package api

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"distviz/adapters/excel"
	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
	"distviz/internal/errors"
	"distviz/internal/session"
)

// Handler serves the JSON API over a session registry
type Handler struct {
	registry *session.Registry
	store    session.FrameStore // nil disables export
	logger   *internal.Logger
}

// NewHandler creates a handler; store may be nil
func NewHandler(registry *session.Registry, store session.FrameStore) *Handler {
	return &Handler{
		registry: registry,
		store:    store,
		logger:   internal.DefaultLogger,
	}
}

// ParameterInfo describes one parameter and the slider a UI should offer
type ParameterInfo struct {
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Default float64  `json:"default"`
	Valid   string   `json:"valid"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Step    float64  `json:"step"`
	Bound   []string `json:"at_most,omitempty"`
}

// DistributionInfo is the catalog entry of one distribution
type DistributionInfo struct {
	Kind        core.Kind       `json:"kind"`
	Name        string          `json:"name"`
	Summary     string          `json:"summary"`
	Formula     string          `json:"formula"`
	Support     string          `json:"support"`
	Joint       bool            `json:"joint"`
	Parameters  []ParameterInfo `json:"parameters"`
	Description string          `json:"description,omitempty"`
}

func describe(m distribution.Model, withDescription bool) DistributionInfo {
	spec := m.Spec()
	_, joint := m.(distribution.JointModel)
	info := DistributionInfo{
		Kind:    spec.Kind,
		Name:    spec.Name,
		Summary: spec.Summary,
		Formula: spec.Formula,
		Support: spec.Support.String(),
		Joint:   joint,
	}
	for _, p := range spec.Parameters {
		pi := ParameterInfo{
			Name:    p.Name,
			Symbol:  p.Symbol,
			Label:   p.Label,
			Kind:    p.Kind.String(),
			Default: p.Default,
			Valid:   p.Valid.String(),
			Min:     p.Slider.Min,
			Max:     p.Slider.Max,
			Step:    p.Slider.Step,
		}
		for _, b := range spec.Bounds {
			if b.Param == p.Name {
				pi.Bound = append(pi.Bound, b.AtMost)
			}
		}
		info.Parameters = append(info.Parameters, pi)
	}
	if withDescription {
		info.Description = spec.Description()
	}
	return info
}

// ListDistributions returns the catalog
func (h *Handler) ListDistributions(c *gin.Context) {
	models := distribution.All()
	out := make([]DistributionInfo, 0, len(models))
	for _, m := range models {
		out = append(out, describe(m, false))
	}
	c.JSON(http.StatusOK, gin.H{"distributions": out})
}

// GetDistribution returns one catalog entry with its markdown description
func (h *Handler) GetDistribution(c *gin.Context) {
	kind, err := core.ParseKind(c.Param("kind"))
	if err != nil {
		h.respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	m, err := distribution.Lookup(kind)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, describe(m, true))
}

type createInstanceRequest struct {
	Kind      string `json:"kind" binding:"required"`
	SessionID string `json:"session_id"`
	Width     *int   `json:"width"`
}

// CreateInstance creates a distribution instance with default parameters
func (h *Handler) CreateInstance(c *gin.Context) {
	var req createInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("body must be {\"kind\": ...}: "+err.Error()))
		return
	}
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		h.respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	inst, err := h.registry.CreateInSession(req.SessionID, kind)
	if err != nil {
		h.respondError(c, err)
		return
	}
	snap := inst.Snapshot()
	if req.Width != nil {
		if snap, err = inst.Resize(*req.Width); err != nil {
			_ = h.registry.Delete(inst.ID)
			h.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, snap)
}

// ListInstances lists live instances
func (h *Handler) ListInstances(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"instances": h.registry.List()})
}

// GetInstance returns one instance snapshot
func (h *Handler) GetInstance(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inst.Snapshot())
}

// DeleteInstance drops an instance
func (h *Handler) DeleteInstance(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	if err := h.registry.Delete(inst.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setParamRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

// SetParam applies one raw parameter edit. The value may be a JSON number or
// a string holding the raw input.
func (h *Handler) SetParam(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	var req setParamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("body must be {\"value\": ...}"))
		return
	}
	raw := strings.TrimSpace(string(req.Value))
	var s string
	if err := json.Unmarshal(req.Value, &s); err == nil {
		raw = s
	}

	change, snap, err := inst.Set(c.Param("name"), raw)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"change": change, "instance": snap})
}

// ResetParams restores the defaults
func (h *Handler) ResetParams(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inst.Reset())
}

type containerRequest struct {
	Width *int `json:"width" binding:"required"`
}

// ResizeContainer delivers a container resize signal
func (h *Handler) ResizeContainer(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("body must be {\"width\": <pixels>}"))
		return
	}
	snap, err := inst.Resize(*req.Width)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

type surfaceRequest struct {
	Enabled bool `json:"enabled"`
}

// SetSurface toggles the joint heat map
func (h *Handler) SetSurface(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	var req surfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.InvalidInput("body must be {\"enabled\": true|false}"))
		return
	}
	snap, err := inst.SetSurface(req.Enabled)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetChart serves the current frame, honouring If-None-Match
func (h *Handler) GetChart(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	data, format, frame, err := inst.Chart()
	if err != nil {
		h.respondError(c, err)
		return
	}
	etag := `"` + frame.Hash.Short() + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), data)
}

// ExportChart writes the current frame to the export store
func (h *Handler) ExportChart(c *gin.Context) {
	if h.store == nil {
		h.respondError(c, errors.NotFound("export store"))
		return
	}
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	key, err := inst.Export(c.Request.Context(), h.store)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

// GetSeries downloads the sampled points behind the chart as CSV or XLSX
func (h *Handler) GetSeries(c *gin.Context) {
	inst, ok := h.instance(c)
	if !ok {
		return
	}
	w, err := excel.NewDataWriter(c.DefaultQuery("format", "csv"))
	if err != nil {
		h.respondError(c, errors.InvalidInput(err.Error()))
		return
	}
	v, series := inst.Series()
	table := excel.NewSeriesTable(v, series)

	c.Header("Content-Type", w.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+table.Kind+"."+w.Extension()+`"`)
	c.Status(http.StatusOK)
	if err := w.Write(c.Writer, table); err != nil {
		h.logger.Error("[API] series export for %s failed: %v", inst.ID, err)
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "instances": h.registry.Len()})
}

func (h *Handler) instance(c *gin.Context) (*session.Instance, bool) {
	id, err := core.ParseInstanceID(c.Param("id"))
	if err != nil {
		h.respondError(c, errors.InvalidInput(err.Error()))
		return nil, false
	}
	inst, err := h.registry.Get(id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return inst, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := errors.Classify(err)
	status := errors.HTTPStatus(appErr.Code)
	body := gin.H{"error": appErr.Message, "code": appErr.Code}

	var cv *distribution.ConstraintViolation
	if stderrors.As(err, &cv) {
		body["param"] = cv.Param
		if !math.IsNaN(cv.Value) {
			body["value"] = cv.Value
		}
	}
	var pe *distribution.ParseError
	if stderrors.As(err, &pe) {
		body["param"] = pe.Param
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		h.logger.Debug("[API] %s %s: %d %v", c.Request.Method, c.Request.URL.Path, status, err)
	}
	c.AbortWithStatusJSON(status, body)
}
