package retrace

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/coregx/retrace/backtrack"
)

func TestCompile(t *testing.T) {
	re, err := Compile(`(a|b)+c`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if got := re.String(); got != `(a|b)+c` {
		t.Errorf("String() = %q, want %q", got, `(a|b)+c`)
	}
}

func TestCompileError(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"dangling star", `*abc`},
		{"dangling plus", `+abc`},
		{"unclosed group", `(abc`},
		{"unopened group", `abc)`},
		{"unterminated class", `[abc`},
		{"backreference out of range", `(a)\2`},
		{"repeat missing comma", `a{3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.pattern)
			}
			if re != nil {
				t.Errorf("Compile(%q) returned non-nil Regex alongside the error", tt.pattern)
			}
			var cerr *backtrack.CompileError
			if !errors.As(err, &cerr) {
				t.Errorf("Compile(%q) error is %T, want *backtrack.CompileError", tt.pattern, err)
			}
		})
	}
}

func TestMustCompile(t *testing.T) {
	re := MustCompile(`[a-z]+`)
	if !re.Match("hello") {
		t.Error("MustCompile pattern did not match")
	}
}

func TestMustCompilePanic(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile did not panic on an invalid pattern")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value is %T, want string", r)
		}
		if !strings.HasPrefix(msg, "retrace: Compile(`+abc`):") {
			t.Errorf("panic message = %q, want a retrace: Compile prefix", msg)
		}
	}()
	MustCompile(`+abc`)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		src     string
		want    bool
	}{
		{`abc`, "xxabcxx", true},
		{`abc`, "xxabxcx", false},
		{`^abc`, "abcdef", true},
		{`^abc`, "zabcdef", false},
		{`abc$`, "zzzabc", true},
		{`abc$`, "abcz", false},
		{`a.c`, "abc", true},
		{`a.c`, "ac", false},
		{`[0-9]+`, "agent 47", true},
		{`[^0-9]`, "12345", false},
		{`colou?r`, "color", true},
		{`colou?r`, "colour", true},
		{`(ab)+`, "abab", true},
		{`(a+) \1`, "aaa aaa", true},
		{`(a+) \1`, "aaa bbb", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.src, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.Match(tt.src); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestMatchAgreesWithFindMatches(t *testing.T) {
	patterns := []string{`abc`, `a+b`, `^x`, `[0-9]{2,3}`, `(foo|bar)`, `(a|ab)c`, `(foo|foobar)x`, `(ax|a)xy`}
	srcs := []string{"", "abc", "xxab", "aab", "x12 345", "a foo b", "ac", "foox", "foobarx", "axy", "axxy"}
	for _, p := range patterns {
		re := MustCompile(p)
		for _, src := range srcs {
			_, found := re.FindMatches(src).Next()
			if got := re.Match(src); got != found {
				t.Errorf("pattern %q: Match(%q) = %v but FindMatches found = %v", p, src, got, found)
			}
		}
	}
}

func TestFindAll(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	got := re.FindAll("1 22 333")
	want := []backtrack.Match{
		{Start: 0, Text: "1"},
		{Start: 2, Text: "22"},
		{Start: 5, Text: "333"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll = %v, want %v", got, want)
	}
}

func TestFindAllNoMatch(t *testing.T) {
	re := MustCompile(`[0-9]`)
	if got := re.FindAll("abcd"); got != nil {
		t.Errorf("FindAll = %v, want nil", got)
	}
}

func TestFindMatchesCaptures(t *testing.T) {
	re := MustCompile(`([a-z]+)@([a-z]+)`)
	it := re.FindMatches("mail me: dev@example, ops@corp")

	m, ok := it.Next()
	if !ok {
		t.Fatal("expected a first match")
	}
	if m.Text != "dev@example" {
		t.Errorf("first match = %q, want %q", m.Text, "dev@example")
	}
	if got, want := it.Captures(), []string{"dev", "example"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Captures() = %v, want %v", got, want)
	}

	m, ok = it.Next()
	if !ok {
		t.Fatal("expected a second match")
	}
	if m.Text != "ops@corp" {
		t.Errorf("second match = %q, want %q", m.Text, "ops@corp")
	}
	if got, want := it.Captures(), []string{"ops", "corp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Captures() = %v, want %v", got, want)
	}
}

func TestNumCaptures(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`abc`, 0},
		{`(a)`, 1},
		{`(a)(b)`, 2},
		{`((a)b)`, 2},
	}
	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.NumCaptures(); got != tt.want {
			t.Errorf("NumCaptures(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestMatchString(t *testing.T) {
	ok, err := MatchString(`[0-9]+`, "agent 47")
	if err != nil {
		t.Fatalf("MatchString returned error: %v", err)
	}
	if !ok {
		t.Error("MatchString = false, want true")
	}

	ok, err = MatchString(`[0-9]+`, "agent")
	if err != nil {
		t.Fatalf("MatchString returned error: %v", err)
	}
	if ok {
		t.Error("MatchString = true, want false")
	}

	if _, err := MatchString(`(`, "x"); err == nil {
		t.Error("MatchString accepted an invalid pattern")
	}
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.CaseSensitive = false
	re, err := CompileWithConfig(`hello`, config)
	if err != nil {
		t.Fatalf("CompileWithConfig returned error: %v", err)
	}
	if !re.Match("say HELLO") {
		t.Error("case-insensitive Match = false, want true")
	}

	config = DefaultConfig()
	config.MinLiteralLen = 0
	if _, err := CompileWithConfig(`abc`, config); err == nil {
		t.Error("CompileWithConfig accepted an invalid config")
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"a.c", `a\.c`},
		{"1+1=2", `1\+1=2`},
		{`a\b`, `a\\b`},
		{"(a|b)", `\(a\|b\)`},
		{"price: $5 {net}", `price: \$5 \{net\}`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := QuoteMeta(tt.in); got != tt.want {
			t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	re := MustCompile(QuoteMeta("2+2 (four)"))
	if !re.Match("2+2 (four)") {
		t.Error("QuoteMeta output did not match its literal source text")
	}
}
