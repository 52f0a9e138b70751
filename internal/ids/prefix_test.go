package ids

import "testing"

func TestShortIDs(t *testing.T) {
	ids := []string{"abcdef12", "abcxyz99", "zzz"}
	short := ShortIDs(ids)

	if got := short["abcdef12"]; got != "abcd" {
		t.Errorf("abcdef12 shortened to %q, want %q", got, "abcd")
	}
	if got := short["abcxyz99"]; got != "abcx" {
		t.Errorf("abcxyz99 shortened to %q, want %q", got, "abcx")
	}
	// Shorter than MinShortLength stays whole.
	if got := short["zzz"]; got != "zzz" {
		t.Errorf("zzz shortened to %q, want %q", got, "zzz")
	}
}

func TestShortIDsMinimumLength(t *testing.T) {
	short := ShortIDs([]string{"a1111111", "b2222222"})
	for id, got := range short {
		if len(got) != MinShortLength {
			t.Errorf("%s shortened to %q, want length %d", id, got, MinShortLength)
		}
	}
}

func TestShortIDsCaseInsensitive(t *testing.T) {
	short := ShortIDs([]string{"ABcdefgh", "abWXYZ12"})
	if got := short["ABcdefgh"]; got != "ABcd" {
		t.Errorf("ABcdefgh shortened to %q, want %q", got, "ABcd")
	}
}

func TestShortIDsSkipsEmptyAndDuplicates(t *testing.T) {
	short := ShortIDs([]string{"", "same1234", "same1234"})
	if _, ok := short[""]; ok {
		t.Error("empty ID should not appear in result")
	}
	if got := short["same1234"]; got != "same" {
		t.Errorf("same1234 shortened to %q, want %q", got, "same")
	}
}
