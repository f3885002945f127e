package rewrite

import "testing"

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		fallback  string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "swedish labels on separate lines",
			raw:       "Titel: Trådlösa hörlurar\n\nBeskrivning (HTML): <p>Upplev friheten.</p>",
			fallback:  "original",
			wantTitle: "Trådlösa hörlurar",
			wantDesc:  "<p>Upplev friheten.</p>",
		},
		{
			name:      "english labels",
			raw:       "Title: Wireless Earbuds\nDescription: <p>Feel the freedom.</p>",
			fallback:  "original",
			wantTitle: "Wireless Earbuds",
			wantDesc:  "<p>Feel the freedom.</p>",
		},
		{
			name:      "description without html qualifier",
			raw:       "Titel: Lampa\nBeskrivning: <p>Mysig.</p>",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
		{
			name:      "full-width colon",
			raw:       "Titel： Lampa\nBeskrivning (HTML)： <p>Mysig.</p>",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
		{
			name:      "no title label falls back and keeps whole reply",
			raw:       "<p>Bara en beskrivning utan etiketter.</p>",
			fallback:  "Leverantörens titel",
			wantTitle: "Leverantörens titel",
			wantDesc:  "<p>Bara en beskrivning utan etiketter.</p>",
		},
		{
			name:      "title but no description label uses rest of reply",
			raw:       "Titel: Lampa\n<p>Första stycket.</p>\n<p>Andra stycket.</p>",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Första stycket.</p>\n<p>Andra stycket.</p>",
		},
		{
			name:      "title only single line",
			raw:       "Titel: Lampa",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "",
		},
		{
			name:      "fenced html description",
			raw:       "Titel: Lampa\nBeskrivning (HTML):\n```html\n<p>Mysig.</p>\n```",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
		{
			name:      "bare fence without language tag",
			raw:       "Titel: Lampa\nBeskrivning (HTML):\n```\n<p>Mysig.</p>\n```",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
		{
			name:      "case-insensitive labels",
			raw:       "TITEL: Lampa\nBESKRIVNING (HTML): <p>Mysig.</p>",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
		{
			name:      "title label mid-reply is not matched mid-line",
			raw:       "Produkten heter Titel: ingenting\n<p>text</p>",
			fallback:  "original",
			wantTitle: "original",
			wantDesc:  "Produkten heter Titel: ingenting\n<p>text</p>",
		},
		{
			name:      "whitespace around values trimmed",
			raw:       "Titel:   Lampa  \nBeskrivning (HTML):   <p>Mysig.</p>  ",
			fallback:  "original",
			wantTitle: "Lampa",
			wantDesc:  "<p>Mysig.</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, desc := ParseResponse(tt.raw, tt.fallback)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", "<p>Hej</p>", "<p>Hej</p>"},
		{"html fence", "```html\n<p>Hej</p>\n```", "<p>Hej</p>"},
		{"bare fence", "```\n<p>Hej</p>\n```", "<p>Hej</p>"},
		{"leading whitespace", "  \n```html\n<p>Hej</p>\n```\n", "<p>Hej</p>"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
