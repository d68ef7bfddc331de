package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/search"
	"github.com/kitbuilder587/bookfinder/internal/service"
)

// максимальный размер тела формы
const maxFormBytes = 64 << 10

type SearchHandler struct {
	service  service.SearchService
	renderer *Renderer
	logger   *zap.Logger
}

func NewSearchHandler(svc service.SearchService, renderer *Renderer, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{service: svc, renderer: renderer, logger: logger}
}

// Index - пустая форма. Каталог не вызывается.
func (h *SearchHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.render(w, r, service.SearchOutcome{Results: []search.Item{}})
}

// Submit - отправка формы. Ошибки валидации и каталога показываются на той же странице с кодом 200.
func (h *SearchHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("bad form submission",
			zap.Error(err),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	req := domain.SearchRequest{
		Query:     r.PostForm.Get("query"),
		Language:  r.PostForm.Get("language"),
		PrintType: r.PostForm.Get("print_type"),
		OrderBy:   r.PostForm.Get("order_by"),
		Category:  r.PostForm.Get("category"),
	}

	out := h.service.Search(r.Context(), SessionIDFromCtx(r.Context()), req)
	h.render(w, r, out)
}

func (h *SearchHandler) render(w http.ResponseWriter, r *http.Request, out service.SearchOutcome) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Index(w, out); err != nil {
		h.logger.Error("failed to render page",
			zap.Error(err),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
