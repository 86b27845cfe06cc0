package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	opts := IndexOptions{Match: IndexMatchSubstring, Sort: SortBytes}

	tests := []struct {
		name        string
		input       string
		opts        IndexOptions
		want        string
		wantEntries []IndexEntry
	}{
		{
			name: "terms from one marker sorted into Index section",
			input: "<a id=Apples></a>\n## Apples\n\nApples are good.<<Index: fruit|food>>\n\n" +
				"<a id=Index></a>\n## Index\n",
			opts: opts,
			want: "<a id=Apples></a>\n## Apples\n\nApples are good.\n\n" +
				"<a id=Index></a>\n## Index\n" +
				"- **food**: See [**Apples**](#Apples).\n" +
				"- **fruit**: See [**Apples**](#Apples).\n",
			wantEntries: []IndexEntry{
				{Term: "food", HeadingText: "Apples", Slug: "Apples"},
				{Term: "fruit", HeadingText: "Apples", Slug: "Apples"},
			},
		},
		{
			name: "entries from several sections",
			input: "Preamble\n<a id=B></a>\n## B\n<<Index: zeta>>\n" +
				"<a id=A></a>\n## A\n<<Index: alpha | zeta |>>\n" +
				"<a id=Index></a>\n## Index\n\nend\n",
			opts: opts,
			want: "Preamble\n<a id=B></a>\n## B\n\n" +
				"<a id=A></a>\n## A\n\n" +
				"<a id=Index></a>\n## Index\n" +
				"- **alpha**: See [**A**](#A).\n" +
				"- **zeta**: See [**A**](#A).\n" +
				"- **zeta**: See [**B**](#B).\n" +
				"\nend\n",
			wantEntries: []IndexEntry{
				{Term: "alpha", HeadingText: "A", Slug: "A"},
				{Term: "zeta", HeadingText: "A", Slug: "A"},
				{Term: "zeta", HeadingText: "B", Slug: "B"},
			},
		},
		{
			name:  "no marker leaves document alone",
			input: "<a id=Index></a>\n## Index\n",
			opts:  opts,
			want:  "<a id=Index></a>\n## Index\n",
		},
		{
			name:  "no index heading leaves document alone",
			input: "<a id=A></a>\n## A\n<<Index: x>>\n",
			opts:  opts,
			want:  "<a id=A></a>\n## A\n<<Index: x>>\n",
		},
		{
			name:  "exact match ignores longer headings",
			input: "<a id=A></a>\n## A\n<<Index: x>>\n<a id=Index_of_terms></a>\n## Index of terms\n",
			opts:  IndexOptions{Match: IndexMatchExact, Sort: SortBytes},
			want:  "<a id=A></a>\n## A\n<<Index: x>>\n<a id=Index_of_terms></a>\n## Index of terms\n",
		},
		{
			name:  "substring match removes markers without an Index section",
			input: "<a id=A></a>\n## A\n<<Index: x>>\n<a id=Index_of_terms></a>\n## Index of terms\n",
			opts:  opts,
			want:  "<a id=A></a>\n## A\n\n<a id=Index_of_terms></a>\n## Index of terms\n",
			wantEntries: []IndexEntry{
				{Term: "x", HeadingText: "A", Slug: "A"},
			},
		},
		{
			name:  "marker with only empty terms is removed",
			input: "<a id=A></a>\n## A\nx<<Index: |>>\n<a id=Index></a>\n## Index\n",
			opts:  opts,
			want:  "<a id=A></a>\n## A\nx\n<a id=Index></a>\n## Index\n",
		},
		{
			name:  "marker before first heading is kept",
			input: "<<Index: early>>\n<a id=Index></a>\n## Index\n",
			opts:  opts,
			want:  "<<Index: early>>\n<a id=Index></a>\n## Index\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, entries := BuildIndex(tt.input, tt.opts)
			if got != tt.want {
				t.Errorf("BuildIndex() =\n%q\nwant\n%q", got, tt.want)
			}
			if diff := cmp.Diff(tt.wantEntries, entries); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	t.Parallel()

	terms := func(entries []IndexEntry) []string {
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Term
		}
		return out
	}

	tests := []struct {
		name  string
		opts  IndexOptions
		input []string
		want  []string
	}{
		{
			name: "bytes puts uppercase first",
			opts: IndexOptions{Sort: SortBytes},
			want: []string{"Banana", "apple", "Äpfel"},
		},
		{
			name:  "bytes compares whole terms",
			opts:  IndexOptions{Sort: SortBytes},
			input: []string{"a b", "a", "a-b"},
			want:  []string{"a", "a b", "a-b"},
		},
		{
			name: "fold ignores case",
			opts: IndexOptions{Sort: SortFold},
			want: []string{"apple", "Banana", "Äpfel"},
		},
		{
			name: "locale ignores case and accents",
			opts: IndexOptions{Sort: SortLocale, Language: language.English},
			want: []string{"Äpfel", "apple", "Banana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := tt.input
			if input == nil {
				input = []string{"apple", "Äpfel", "Banana"}
			}
			entries := make([]IndexEntry, len(input))
			for i, term := range input {
				entries[i] = IndexEntry{Term: term, HeadingText: "H", Slug: "H"}
			}
			sortEntries(entries, tt.opts)
			if diff := cmp.Diff(tt.want, terms(entries)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndexEntry_String(t *testing.T) {
	t.Parallel()

	e := IndexEntry{Term: "food", HeadingText: "Apples", Slug: "Apples"}
	want := "- **food**: See [**Apples**](#Apples)."
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
