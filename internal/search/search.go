package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrUnauthorized   = errors.New("invalid API key or quota exceeded")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrUpstream       = errors.New("catalog request failed")
	ErrBadResponse    = errors.New("malformed catalog response")
)

type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) ([]Item, error)
}

type SearchRequest struct {
	Query        string
	LangRestrict string
	PrintType    string
	OrderBy      string
	MaxResults   int
}

// Item - запись каталога как есть, без интерпретации. Сохраняется в сессию байт в байт.
type Item json.RawMessage

func (i Item) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}
	return i, nil
}

func (i *Item) UnmarshalJSON(data []byte) error {
	if i == nil {
		return errors.New("search.Item: UnmarshalJSON on nil pointer")
	}
	*i = append((*i)[0:0], data...)
	return nil
}

// Volume - то, что нужно странице для карточки книги.
type Volume struct {
	ID            string
	Title         string
	Authors       []string
	PublishedDate string
	Categories    []string
	Description   string
	Thumbnail     string
	PreviewLink   string
}

type volumeEnvelope struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		PublishedDate string   `json:"publishedDate"`
		Categories    []string `json:"categories"`
		Description   string   `json:"description"`
		PreviewLink   string   `json:"previewLink"`
		ImageLinks    struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// Volume достает поля для отображения. Битая запись дает пустой Volume, а не ошибку:
// страница должна отрендериться в любом случае.
func (i Item) Volume() Volume {
	var env volumeEnvelope
	if err := json.Unmarshal(i, &env); err != nil {
		return Volume{}
	}

	info := env.VolumeInfo
	thumb := info.ImageLinks.Thumbnail
	if thumb == "" {
		thumb = info.ImageLinks.SmallThumbnail
	}

	return Volume{
		ID:            env.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		PublishedDate: info.PublishedDate,
		Categories:    info.Categories,
		Description:   info.Description,
		Thumbnail:     secureThumbnail(thumb),
		PreviewLink:   info.PreviewLink,
	}
}

func (v Volume) AuthorLine() string {
	if len(v.Authors) == 0 {
		return "Author unknown"
	}
	return "by " + strings.Join(v.Authors, ", ")
}

func (v Volume) Category() string {
	if len(v.Categories) == 0 {
		return ""
	}
	return v.Categories[0]
}

// каталог отдает http-ссылки с zoom=1, берем https и полный размер
func secureThumbnail(u string) string {
	if u == "" {
		return ""
	}
	u = strings.Replace(u, "http:", "https:", 1)
	return strings.Replace(u, "&zoom=1", "", 1)
}
