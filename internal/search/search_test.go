package search

import (
	"encoding/json"
	"testing"
)

const duneItem = `{
	"id": "B1hSG45JCX4C",
	"volumeInfo": {
		"title": "Dune",
		"authors": ["Frank Herbert"],
		"publishedDate": "1965",
		"categories": ["Fiction"],
		"description": "Desert planet.",
		"previewLink": "http://books.google.com/books?id=B1hSG45JCX4C",
		"imageLinks": {"thumbnail": "http://books.google.com/books/content?id=B1hSG45JCX4C&printsec=frontcover&img=1&zoom=1&source=gbs_api"}
	}
}`

func TestItem_Volume(t *testing.T) {
	v := Item(duneItem).Volume()

	if v.ID != "B1hSG45JCX4C" {
		t.Errorf("ID = %q", v.ID)
	}
	if v.Title != "Dune" {
		t.Errorf("Title = %q, want Dune", v.Title)
	}
	if v.AuthorLine() != "by Frank Herbert" {
		t.Errorf("AuthorLine() = %q", v.AuthorLine())
	}
	if v.Category() != "Fiction" {
		t.Errorf("Category() = %q", v.Category())
	}
	want := "https://books.google.com/books/content?id=B1hSG45JCX4C&printsec=frontcover&img=1&source=gbs_api"
	if v.Thumbnail != want {
		t.Errorf("Thumbnail = %q, want %q", v.Thumbnail, want)
	}
}

func TestItem_Volume_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"no volume info", `{"id": "x"}`},
		{"not an object", `"just a string"`},
		{"garbage", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Item(tt.raw).Volume()
			if v.Title != "" {
				t.Errorf("Title = %q, want empty", v.Title)
			}
			if v.AuthorLine() != "Author unknown" {
				t.Errorf("AuthorLine() = %q, want Author unknown", v.AuthorLine())
			}
			if v.Category() != "" {
				t.Errorf("Category() = %q, want empty", v.Category())
			}
		})
	}
}

func TestItem_Volume_SmallThumbnailFallback(t *testing.T) {
	v := Item(`{"volumeInfo": {"imageLinks": {"smallThumbnail": "http://x/img?id=1&zoom=5"}}}`).Volume()
	if v.Thumbnail != "https://x/img?id=1&zoom=5" {
		t.Errorf("Thumbnail = %q", v.Thumbnail)
	}
}

func TestItem_JSONRoundTripKeepsBytes(t *testing.T) {
	in := []Item{Item(`{"id":"a","extra":{"k":[1,2]}}`), Item(`{"id":"b"}`)}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out []Item
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	for i := range in {
		if string(out[i]) != string(in[i]) {
			t.Errorf("item %d = %s, want %s", i, out[i], in[i])
		}
	}
}
