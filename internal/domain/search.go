package domain

import (
	"strings"
)

const (
	// MaxResults - сколько книг просим у каталога за один запрос (только первая страница)
	MaxResults = 20

	DefaultLanguage  = "en"
	DefaultPrintType = "all"
	DefaultOrderBy   = "relevance"
	DefaultCategory  = "all"
)

const (
	EmptyQueryMessage = "Please enter a search query."
	APIErrorPrefix    = "API error: "
)

type SearchRequest struct {
	Query     string
	Language  string
	PrintType string
	OrderBy   string
	Category  string
}

func (r *SearchRequest) Sanitize() {
	// запрос уходит в каталог как есть, без обрезки: размер ограничен лимитом тела формы
	r.Query = strings.TrimSpace(r.Query)
	r.Language = strings.TrimSpace(r.Language)
	r.PrintType = strings.TrimSpace(r.PrintType)
	r.OrderBy = strings.TrimSpace(r.OrderBy)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *SearchRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.PrintType == "" {
		r.PrintType = DefaultPrintType
	}
	if r.OrderBy == "" {
		r.OrderBy = DefaultOrderBy
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// CatalogQuery - значение параметра q. Категория уходит квалификатором subject:,
// "all" ничего не добавляет.
func (r *SearchRequest) CatalogQuery() string {
	if r.Category == "" || strings.EqualFold(r.Category, DefaultCategory) {
		return r.Query
	}
	return r.Query + " subject:" + r.Category
}
