package plaintext

import (
	"strings"
	"testing"
)

func TestFromFragment_SeparatesBlocksAndSkipsWidgets(t *testing.T) {
	body := `<h4>Sub</h4><p>One two &amp; three.</p><div class="share-bar">Share this</div>` +
		`<script>track()</script><p>Four</p>`

	doc := FromFragment(body)
	want := "Sub\n\nOne two & three.\n\nFour"
	if doc.Text != want {
		t.Fatalf("text=%q, want %q", doc.Text, want)
	}
	if doc.Words != 6 {
		t.Fatalf("words=%d, want 6", doc.Words)
	}
}

func TestFromFragment_KeepsCaptionsAndLists(t *testing.T) {
	body := `<figure><img src="a.jpg"><figcaption>Crews at work.</figcaption></figure>` +
		`<ul><li>First</li><li>Second</li></ul>`
	doc := FromFragment(body)
	if !strings.Contains(doc.Text, "Crews at work.") {
		t.Fatalf("expected caption text, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "First") || !strings.Contains(doc.Text, "Second") {
		t.Fatalf("expected list items, got %q", doc.Text)
	}
}

func TestFromFragment_Empty(t *testing.T) {
	doc := FromFragment("")
	if doc.Text != "" || doc.Words != 0 || doc.ReadingMinutes() != 0 {
		t.Fatalf("unexpected document for empty body: %+v", doc)
	}
}

func TestReadingMinutes(t *testing.T) {
	cases := map[int]int{1: 1, 200: 1, 201: 2, 1000: 5}
	for words, want := range cases {
		if got := (Document{Words: words}).ReadingMinutes(); got != want {
			t.Fatalf("ReadingMinutes(%d words)=%d, want %d", words, got, want)
		}
	}
}
