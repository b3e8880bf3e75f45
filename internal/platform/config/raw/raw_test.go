package raw

import "testing"

func TestGet(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_FORMAT", " json ")
	if got := c.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("FORMAT = %q", got)
	}
	if got := c.Get("LEVEL", "debug"); got != "debug" {
		t.Fatalf("LEVEL = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := map[string]bool{"yes": true, "YES": true, "1": true, "true": true, "no": false, "0": false, "False": false}
	for in, want := range cases {
		t.Setenv("LOG_CALLER", in)
		if got := c.GetBool("CALLER", !want); got != want {
			t.Errorf("%q = %v", in, got)
		}
	}
	t.Setenv("LOG_CALLER", "sometimes")
	if !c.GetBool("CALLER", true) {
		t.Fatal("junk should yield default")
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	cases := map[string]int{"10": 10, "0": 0, "": 5, "-2": 5, "ten": 5}
	for in, want := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", in)
		if got := c.GetInt("SAMPLE_EVERY", 5); got != want {
			t.Errorf("%q = %d, want %d", in, got, want)
		}
	}
}
