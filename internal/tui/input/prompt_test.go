package input

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Parsed
	}{
		{"lunch with Ana tomorrow 13:00", Parsed{Name: "/add", Arg: "lunch with Ana tomorrow 13:00"}},
		{"  /goto 2025-01-10 ", Parsed{Name: "/goto", Arg: "2025-01-10"}},
		{"/Month", Parsed{Name: "/month"}},
		{"/add  sync at 9", Parsed{Name: "/add", Arg: "sync at 9"}},
		{"", Parsed{Name: "/add"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := Parse(tt.line); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	if !Known("/goto") || Known("/plan") {
		t.Error("unexpected command set")
	}
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "add", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/goto", want: 1},
		{name: "prefix", input: "/m", want: 1},
		{name: "shared prefix", input: "/", want: len(Commands)},
		{name: "upper case", input: "/T", want: 1},
		{name: "with_space", input: "/goto x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, Commands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/g", Commands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/goto " {
		t.Fatalf("value = %q, want %q", value, "/goto ")
	}

	if _, ok := PromptAutocomplete("/zzz", Commands); ok {
		t.Error("unexpected autocomplete")
	}
}
