package web

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/search"
	"github.com/kitbuilder587/bookfinder/internal/service"
)

func TestSelectOptions(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		wantLen  int
		want     string
	}{
		{"known value", "newest", 2, "newest"},
		{"unknown value kept", "oldest", 3, "oldest"},
		{"empty selects nothing", "", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := selectOptions(orderBys, tt.selected)
			assert.Len(t, opts, tt.wantLen)

			got := ""
			for _, o := range opts {
				if o.Selected {
					got = o.Value
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}

	// базовый список не мутируется
	for _, o := range orderBys {
		assert.False(t, o.Selected)
	}
}

func TestRenderer_Index(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	small := search.Item(`{"volumeInfo":{"title":"Small","authors":["A","B"],` +
		`"imageLinks":{"smallThumbnail":"http://img/small?id=1&zoom=1"}}}`)
	bare := search.Item(`{"volumeInfo":{}}`)

	var buf bytes.Buffer
	err = r.Index(&buf, service.SearchOutcome{
		Request:  domain.SearchRequest{Query: "x"},
		Results:  []search.Item{small, bare},
		Searched: true,
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	cards := doc.Find(".book-card")
	require.Equal(t, 2, cards.Length())

	assert.Equal(t, "https://img/small?id=1", cards.Eq(0).Find("img").AttrOr("src", ""))
	assert.Equal(t, "by A, B", cards.Eq(0).Find(".book-authors").Text())
	assert.Equal(t, 0, cards.Eq(0).Find(".book-link").Length())

	assert.Equal(t, 1, cards.Eq(1).Find(".book-cover-placeholder").Length())
	assert.Equal(t, "Author unknown", cards.Eq(1).Find(".book-authors").Text())
	assert.Equal(t, 0, cards.Eq(1).Find(".book-date").Length())
}

func TestRenderer_ErrorHidesResultsInfo(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Index(&buf, service.SearchOutcome{
		Results:  []search.Item{},
		Error:    "API error: boom",
		Searched: true,
	}))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "API error: boom", doc.Find("#errorMessage").Text())
	assert.Equal(t, 0, doc.Find("#resultsInfo").Length())
}
