package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/stringity"
	"github.com/lwmacct/251207-go-pkg-stringity/pkg/templexp"
)

// handler 处理 /v1 接口，请求中未给出的选项使用配置中的默认值。
type handler struct {
	cfg *config.Config
}

// NewHandler 返回服务端路由。
//
//   - GET  /health
//   - POST /v1/slice | /v1/trim | /v1/count | /v1/classify | /v1/format | /v1/unicode
func NewHandler(cfg *config.Config) http.Handler {
	h := &handler{cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID, logRequests, middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/slice", h.slice)
		r.Post("/trim", h.trim)
		r.Post("/count", h.count)
		r.Post("/classify", h.classify)
		r.Post("/format", h.format)
		r.Post("/unicode", h.unicode)
	})

	return r
}

// SliceRequest /v1/slice 请求体。
type SliceRequest struct {
	Text            string            `json:"text"`
	Scope           string            `json:"scope,omitempty"`
	Start           stringity.Locator `json:"start"`
	End             stringity.Locator `json:"end"`
	Trim            *bool             `json:"trim,omitempty"`
	Tags            *bool             `json:"tags,omitempty"`
	CaseSensitivity *bool             `json:"caseSensitivity,omitempty"`
	Strict          *bool             `json:"strict,omitempty"`
	StartAnchor     string            `json:"startAnchor,omitempty"`
	EndAnchor       string            `json:"endAnchor,omitempty"`
	Sep             *string           `json:"sep,omitempty"`
}

// SliceResponse /v1/slice 响应体，Found 为 false 表示无结果。
type SliceResponse struct {
	Result string `json:"result"`
	Found  bool   `json:"found"`
}

// TextRequest /v1/trim、/v1/classify 请求体。
type TextRequest struct {
	Text string `json:"text"`
}

// CountRequest /v1/count 请求体。
type CountRequest struct {
	Text  string `json:"text"`
	Scope string `json:"scope,omitempty"`
	Trim  bool   `json:"trim,omitempty"`
}

// FormatRequest /v1/format 请求体。Vars 优先于 Args；不支持环境变量来源。
type FormatRequest struct {
	Text     string         `json:"text"`
	Vars     map[string]any `json:"vars,omitempty"`
	Args     []string       `json:"args,omitempty"`
	Required bool           `json:"required,omitempty"`
	Pattern  string         `json:"pattern,omitempty"`
	Start    string         `json:"start,omitempty"`
	End      string         `json:"end,omitempty"`
}

// UnicodeRequest /v1/unicode 请求体。
type UnicodeRequest struct {
	Text     string `json:"text"`
	Ellipses *bool  `json:"ellipses,omitempty"`
	Quotes   *bool  `json:"quotes,omitempty"`
}

// ResultResponse 通用响应体。
type ResultResponse struct {
	Result string `json:"result"`
}

// ErrorResponse 错误响应体，Kind 为 reference|type|range|request。
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *handler) slice(w http.ResponseWriter, r *http.Request) {
	var req SliceRequest
	if !h.decode(w, r, &req) {
		return
	}

	sc := h.cfg.Slice
	if req.Scope != "" {
		sc.Scope = req.Scope
	}
	overrideBool(&sc.Trim, req.Trim)
	overrideBool(&sc.Tags, req.Tags)
	overrideBool(&sc.CaseSensitivity, req.CaseSensitivity)
	overrideBool(&sc.Strict, req.Strict)
	if req.StartAnchor != "" {
		sc.StartAnchor = req.StartAnchor
	}
	if req.EndAnchor != "" {
		sc.EndAnchor = req.EndAnchor
	}
	if req.Sep != nil {
		sc.Sep = *req.Sep
	}

	scope, err := sc.ParseScope()
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := sc.Options()
	if err != nil {
		writeError(w, err)
		return
	}

	result, found, err := stringity.Slice(req.Text, scope, req.Start, req.End, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SliceResponse{Result: result, Found: found})
}

func (h *handler) trim(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := stringity.TrimFull(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: result})
}

func (h *handler) count(w http.ResponseWriter, r *http.Request) {
	var req CountRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Scope == "" {
		req.Scope = h.cfg.Slice.Scope
	}

	scope, err := stringity.ParseScope(req.Scope)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := stringity.Count(req.Text, scope, stringity.WithCountTrim(req.Trim))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *handler) classify(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !h.decode(w, r, &req) {
		return
	}

	scope, err := stringity.Classify(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]stringity.Scope{"scope": scope})
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !h.decode(w, r, &req) {
		return
	}

	fc := h.cfg.Format
	if req.Pattern != "" {
		fc.Pattern = req.Pattern
	}
	if req.Start != "" {
		fc.Start = req.Start
	}
	if req.End != "" {
		fc.End = req.End
	}
	opts, err := fc.Options()
	if err != nil {
		writeError(w, errors.Join(stringity.ErrType, err))
		return
	}
	if req.Required {
		opts = append(opts, templexp.WithRequired())
	}

	var vars templexp.Vars
	switch {
	case req.Vars != nil:
		vars = templexp.Map(req.Vars)
	case req.Args != nil:
		vars = templexp.List(req.Args)
	}

	result, err := stringity.Format(req.Text, vars, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: result})
}

func (h *handler) unicode(w http.ResponseWriter, r *http.Request) {
	var req UnicodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	uc := h.cfg.Unicode
	overrideBool(&uc.Ellipses, req.Ellipses)
	overrideBool(&uc.Quotes, req.Quotes)

	result, err := stringity.ToUnicode(req.Text, uc.Options()...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: result})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if h.cfg.Server.MaxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxBody)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, err)
		return false
	}

	return true
}

func overrideBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// errorKind 将错误映射为响应中的 kind。
func errorKind(err error) string {
	switch {
	case errors.Is(err, stringity.ErrReference):
		return "reference"
	case errors.Is(err, stringity.ErrType):
		return "type"
	case errors.Is(err, stringity.ErrRange):
		return "range"
	default:
		return "request"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: errorKind(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
