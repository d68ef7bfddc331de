package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/search"
	"github.com/kitbuilder587/bookfinder/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Request  domain.SearchRequest
	Error    string
	Searched bool
	Volumes  []search.Volume

	PrintTypes []option
	OrderBys   []option
	Categories []option
}

var (
	printTypes = []option{{Value: "all", Label: "All"}, {Value: "books", Label: "Books"}, {Value: "magazines", Label: "Magazines"}}
	orderBys   = []option{{Value: "relevance", Label: "Relevance"}, {Value: "newest", Label: "Newest"}}
	categories = []option{
		{Value: "all", Label: "All categories"},
		{Value: "fiction", Label: "Fiction"},
		{Value: "science", Label: "Science"},
		{Value: "history", Label: "History"},
		{Value: "biography", Label: "Biography"},
		{Value: "computers", Label: "Computers"},
		{Value: "business", Label: "Business"},
		{Value: "poetry", Label: "Poetry"},
	}
)

type Renderer struct {
	index *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{index: tmpl}, nil
}

// Index рендерит в буфер целиком: при ошибке шаблона клиент не получит половину страницы.
func (r *Renderer) Index(w io.Writer, out service.SearchOutcome) error {
	req := out.Request
	req.ApplyDefaults()

	volumes := make([]search.Volume, 0, len(out.Results))
	for _, item := range out.Results {
		volumes = append(volumes, item.Volume())
	}

	data := pageData{
		Request:    req,
		Error:      out.Error,
		Searched:   out.Searched,
		Volumes:    volumes,
		PrintTypes: selectOptions(printTypes, req.PrintType),
		OrderBys:   selectOptions(orderBys, req.OrderBy),
		Categories: selectOptions(categories, req.Category),
	}

	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// значение не из списка (пришло руками) тоже показываем, чтобы форма отражала запрос
func selectOptions(base []option, selected string) []option {
	opts := make([]option, 0, len(base)+1)
	found := false
	for _, o := range base {
		o.Selected = o.Value == selected
		found = found || o.Selected
		opts = append(opts, o)
	}
	if !found && selected != "" {
		opts = append(opts, option{Value: selected, Label: selected, Selected: true})
	}
	return opts
}
