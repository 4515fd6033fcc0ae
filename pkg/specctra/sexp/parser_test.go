package sexp

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	chewxy "github.com/chewxy/sexp"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Sexp
	}{
		{
			name:  "nested list with quoted atom",
			input: `(a (b 1 2) "c d")`,
			want: NewList(
				Atom("a"),
				NewList(Atom("b"), Atom("1"), Atom("2")),
				Atom("c d"),
			),
		},
		{
			name:  "empty list",
			input: "()",
			want:  NewList(),
		},
		{
			name:  "bare atom",
			input: "  hello ",
			want:  Atom("hello"),
		},
		{
			name:  "whitespace is insignificant",
			input: "(\n\ta\t(  b  )\r\n)",
			want:  NewList(Atom("a"), NewList(Atom("b"))),
		},
		{
			name:  "quoted atom keeps parens and backslashes",
			input: `(x "a (b) \n")`,
			want:  NewList(Atom("x"), Atom(`a (b) \n`)),
		},
		{
			name:  "empty quoted atom",
			input: `(class c "" GND)`,
			want:  NewList(Atom("class"), Atom("c"), Atom(""), Atom("GND")),
		},
		{
			name:  "string_quote directive",
			input: `(parser (string_quote ") (host_cad "KiCad's Pcbnew"))`,
			want: NewList(
				Atom("parser"),
				NewList(Atom("string_quote"), Atom(`"`)),
				NewList(Atom("host_cad"), Atom("KiCad's Pcbnew")),
			),
		},
		{
			name:  "atoms with punctuation",
			input: "(pins U1-1 Rect[A]Pad_1700x1700_um -2.5e3)",
			want: NewList(
				Atom("pins"),
				Atom("U1-1"),
				Atom("Rect[A]Pad_1700x1700_um"),
				Atom("-2.5e3"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString() unexpected error: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("ParseString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty input", input: "   ", wantMsg: "empty input"},
		{name: "unterminated list", input: "(a (b c)", wantMsg: "unterminated list"},
		{name: "unterminated outer list", input: "(a\n(b c)\n", wantMsg: "1:1"},
		{name: "stray close paren", input: ")", wantMsg: "unexpected ')'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ParseString() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 50) + strings.Repeat(")", 50)

	if _, err := ParseString(deep, WithMaxDepth(50)); err != nil {
		t.Fatalf("depth 50 with limit 50: unexpected error: %v", err)
	}

	_, err := ParseString(deep, WithMaxDepth(49))
	if err == nil {
		t.Fatal("depth 50 with limit 49: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "limit of 49") {
		t.Errorf("error = %q, want it to name the limit", err)
	}
}

func TestParseDeepInputDoesNotRecurse(t *testing.T) {
	// Far deeper than any recursive descent would comfortably handle.
	const depth = 200000
	deep := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)

	got, err := ParseString(deep, WithMaxDepth(depth))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	levels := 0
	for node := got; ; levels++ {
		list, ok := node.(*List)
		if !ok {
			break
		}
		node = list.Head()
	}
	if levels != depth {
		t.Errorf("nesting = %d, want %d", levels, depth)
	}

	if _, err := ParseString(deep); err == nil {
		t.Error("default limit: expected error, got nil")
	}
}

func TestParseTrailingInputWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got, err := ParseString("(first 1) (second 2)", WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, NewList(Atom("first"), Atom("1"))) {
		t.Errorf("got %s, want the first expression", got)
	}
	if !strings.Contains(buf.String(), "trailing input") {
		t.Errorf("expected trailing input warning, log = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected WARN level, log = %q", buf.String())
	}
}

// The chewxy reader is a general-purpose Lisp reader. For unquoted input the
// number of top-level expressions it sees must agree with whether we warn
// about trailing input.
func TestTrailingInputAgreesWithChewxy(t *testing.T) {
	inputs := []string{
		"(a b)",
		"(a b) (c d)",
		"(a (b (c))) (d) (e)",
		"(pcb board (resolution um 10))",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			ref, err := chewxy.ParseString(input)
			if err != nil {
				t.Fatalf("chewxy.ParseString() error: %v", err)
			}
			if len(ref) == 0 || ref[0].IsLeaf() {
				t.Fatalf("chewxy.ParseString() returned no list")
			}

			var buf bytes.Buffer
			got, err := ParseString(input, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
			if err != nil {
				t.Fatalf("ParseString() error: %v", err)
			}
			if got.IsLeaf() {
				t.Errorf("ParseString() returned an atom")
			}

			warned := strings.Contains(buf.String(), "trailing input")
			if warned != (len(ref) > 1) {
				t.Errorf("warned = %v, chewxy saw %d expressions", warned, len(ref))
			}
		})
	}
}

func TestAtomString(t *testing.T) {
	tests := []struct {
		atom Atom
		want string
	}{
		{Atom("abc"), "abc"},
		{Atom("c d"), `"c d"`},
		{Atom(""), `""`},
		{Atom("a(b"), `"a(b"`},
	}
	for _, tt := range tests {
		if got := tt.atom.String(); got != tt.want {
			t.Errorf("Atom(%q).String() = %s, want %s", string(tt.atom), got, tt.want)
		}
	}
}
