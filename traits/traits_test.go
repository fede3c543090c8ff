package traits

import "testing"

func TestHasAddRemove(t *testing.T) {
	var tr Trait
	if tr.Has(Brave) {
		t.Error("empty set should have no traits")
	}

	tr = tr.Add(Brave).Add(Industrious)
	if !tr.Has(Brave) || !tr.Has(Industrious) {
		t.Error("added traits should be present")
	}
	if tr.Has(Timid) || tr.Has(Loner) {
		t.Error("unadded traits should be absent")
	}

	tr = tr.Remove(Brave)
	if tr.Has(Brave) {
		t.Error("removed trait should be absent")
	}
	if !tr.Has(Industrious) {
		t.Error("removing one trait should not touch others")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		tr   Trait
		want string
	}{
		{0, "plain"},
		{Brave, "brave"},
		{Timid.Add(Loner), "timid,loner"},
		{Brave.Add(Gregarious).Add(Industrious), "brave,gregarious,industrious"},
	}
	for _, tc := range cases {
		if got := tc.tr.String(); got != tc.want {
			t.Errorf("Trait(%d).String() = %q, want %q", tc.tr, got, tc.want)
		}
	}
}
