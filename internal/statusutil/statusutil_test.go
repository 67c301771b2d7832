package statusutil

import "testing"

func TestNormalizeStatusID(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"open", "open", false},
		{"DOING", "doing", false},
		{"  Done ", "done", false},
		{"none", "", false},
		{"NONE", "", false},
		{"custom-qa", "custom-qa", false},
		{"", "", true},
		{"   ", "", true},
	}
	for _, c := range cases {
		got, err := NormalizeStatusID(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsEndState(t *testing.T) {
	if !IsEndState("done") || !IsEndState(" DONE ") {
		t.Error("done must be an end state")
	}
	for _, s := range []string{"open", "doing", "blocked", "custom-qa", ""} {
		if IsEndState(s) {
			t.Errorf("%q must not be an end state", s)
		}
	}
}
