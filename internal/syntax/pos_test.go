package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.rstn", 10, 5),
			wantStr: "test.rstn:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.rstn", 1, 1),
			wantStr: "main.rstn:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{
			name:  "valid position",
			pos:   NewPos("test.rstn", 1, 1),
			valid: true,
		},
		{
			name:  "valid position line 100",
			pos:   NewPos("", 100, 50),
			valid: true,
		},
		{
			name:  "invalid - zero line",
			pos:   NewPos("test.rstn", 0, 1),
			valid: false,
		},
		{
			name:  "invalid - zero value",
			pos:   Pos{},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPosGetters(t *testing.T) {
	pos := NewPos("test.rstn", 42, 13)

	if got := pos.Line(); got != 42 {
		t.Errorf("Pos.Line() = %d, want 42", got)
	}
	if got := pos.Col(); got != 13 {
		t.Errorf("Pos.Col() = %d, want 13", got)
	}
	if got := pos.Filename(); got != "test.rstn" {
		t.Errorf("Pos.Filename() = %q, want %q", got, "test.rstn")
	}
}

func TestPosBefore(t *testing.T) {
	tests := []struct {
		p, q Pos
		want bool
	}{
		{NewPos("f", 1, 1), NewPos("f", 1, 2), true},
		{NewPos("f", 1, 9), NewPos("f", 2, 1), true},
		{NewPos("f", 2, 1), NewPos("f", 1, 9), false},
		{NewPos("f", 3, 4), NewPos("f", 3, 4), false},
	}

	for _, tt := range tests {
		if got := tt.p.Before(tt.q); got != tt.want {
			t.Errorf("%s.Before(%s) = %v, want %v", tt.p, tt.q, got, tt.want)
		}
	}
}
