package version

import "testing"

func TestValidate_Valid(t *testing.T) {
	t.Parallel()
	tests := []string{
		"r16",
		"r16b",
		"r20",
		"r21e",
		"r100z",
	}

	for _, v := range tests {
		v := v
		t.Run(v, func(t *testing.T) {
			t.Parallel()
			if err := Validate(v); err != nil {
				t.Errorf("Validate(%q) = %v, want nil", v, err)
			}
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	t.Parallel()
	tests := []string{
		"",
		"r",
		"16b",
		"R16b",
		"r16bb",
		"r16B",
		"r16.1",
		"21.4.7075529",
	}

	for _, v := range tests {
		v := v
		t.Run(v, func(t *testing.T) {
			t.Parallel()
			if err := Validate(v); err == nil {
				t.Errorf("Validate(%q) = nil, want error", v)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		major  int
		letter byte
	}{
		{"r16b", 16, 'b'},
		{"r20", 20, 0},
		{"r21e", 21, 'e'},
		{" r21e ", 21, 'e'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got.Major != tt.major || got.Letter != tt.letter {
				t.Errorf("Parse(%q) = %+v, want major=%d letter=%q", tt.input, got, tt.major, tt.letter)
			}
		})
	}
}

func TestRevision_String(t *testing.T) {
	tests := []string{"r16b", "r20", "r21e"}
	for _, s := range tests {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		if got := r.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestCompareStrings(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"r16b", "r20", -1},
		{"r20", "r20", 0},
		{"r20", "r20b", -1},
		{"r21e", "r21d", 1},
		{"r9", "r10", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, err := CompareStrings(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CompareStrings() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CompareStrings(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if _, err := CompareStrings("r20", "bogus"); err == nil {
		t.Error("CompareStrings() expected error for invalid revision")
	}
}

func TestParseCompiler(t *testing.T) {
	tests := []struct {
		input               string
		major, minor, patch int
	}{
		{"8", 8, -1, -1},
		{"8.0", 8, 0, -1},
		{"8.0.7", 8, 0, 7},
		{"clang-8", 8, -1, -1},
		{"Clang 9.0.8", 9, 0, 8},
		{"clang5.0", 5, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompiler(tt.input)
			if err != nil {
				t.Fatalf("ParseCompiler(%q) error = %v", tt.input, err)
			}
			if got.Major != tt.major || got.Minor != tt.minor || got.Patch != tt.patch {
				t.Errorf("ParseCompiler(%q) = %+v, want %d.%d.%d", tt.input, got, tt.major, tt.minor, tt.patch)
			}
		})
	}
}

func TestParseCompiler_Invalid(t *testing.T) {
	for _, v := range []string{"", "gcc-4.9", "clang-", "8.x", "latest"} {
		if _, err := ParseCompiler(v); err == nil {
			t.Errorf("ParseCompiler(%q) = nil error, want error", v)
		}
	}
}

func TestCompilerMajor(t *testing.T) {
	got, err := CompilerMajor("clang-8")
	if err != nil {
		t.Fatalf("CompilerMajor() error = %v", err)
	}
	if got != 8 {
		t.Errorf("CompilerMajor() = %d, want 8", got)
	}
}
