package cli

import "testing"

func TestIsValidSessionName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple lowercase", "myproject", true},
		{"hyphenated", "my-project", true},
		{"underscored", "my_project", true},
		{"mixed case with digits", "MyProject123", true},
		{"hyphen and underscore", "test-session_v2", true},
		{"single character", "a", true},
		{"digits only", "12345", true},
		{"leading hyphen", "-leading", true},
		{"empty", "", false},
		{"dot dot", "..", false},
		{"traversal", "../etc/passwd", false},
		{"windows traversal", "..\\windows", false},
		{"forward slash", "foo/bar", false},
		{"backslash", "foo\\bar", false},
		{"space", "my project", false},
		{"dot", "my.project", false},
		{"at sign", "my@project", false},
		{"colon", "my:project", false},
		{"asterisk", "my*project", false},
		{"accented", "café", false},
		{"cjk", "セッション", false},
		{"emoji", "session\U0001f600", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidSessionName(tt.input); got != tt.want {
				t.Errorf("IsValidSessionName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSessionNameError(t *testing.T) {
	got := SessionNameError("../bad")
	want := "Invalid session name '../bad'. Only alphanumeric characters, hyphens, and underscores are allowed."
	if got != want {
		t.Errorf("SessionNameError() = %q, want %q", got, want)
	}
}

func TestSessionNameErrorEmbedsValueVerbatim(t *testing.T) {
	got := SessionNameError("")
	want := "Invalid session name ''. Only alphanumeric characters, hyphens, and underscores are allowed."
	if got != want {
		t.Errorf("SessionNameError(\"\") = %q, want %q", got, want)
	}
}
