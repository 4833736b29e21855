package recipes

import (
	"slices"
	"testing"
)

func snippetList(titles ...string) []Recipe {
	list := make([]Recipe, len(titles))
	for i, title := range titles {
		list[i].Title = title
	}
	return list
}

func titlesOf(list []Recipe) []string {
	titles := make([]string, len(list))
	for i, r := range list {
		titles[i] = r.Title
	}
	return titles
}

func TestSearchEmptyTermReturnsAll(t *testing.T) {
	list := snippetList("Tomato soup", "Banana bread")
	got := Search(list, "")
	if !slices.Equal(titlesOf(got), titlesOf(list)) {
		t.Errorf("Search with empty term = %v, want unchanged list", titlesOf(got))
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	list := snippetList("Tomato Soup", "Banana bread", "Miso soup")

	got := Search(list, "SOUP")
	want := []string{"Tomato Soup", "Miso soup"}
	if !slices.Equal(titlesOf(got), want) {
		t.Errorf("Search(SOUP) = %v, want %v", titlesOf(got), want)
	}

	got = Search(list, "ban")
	want = []string{"Banana bread"}
	if !slices.Equal(titlesOf(got), want) {
		t.Errorf("Search(ban) = %v, want %v", titlesOf(got), want)
	}
}

func TestSearchNoMatches(t *testing.T) {
	got := Search(snippetList("Tomato soup"), "pancake")
	if len(got) != 0 {
		t.Errorf("Search(pancake) = %v, want empty", titlesOf(got))
	}
}
