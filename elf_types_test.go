package main

import "testing"

func TestFlagsToProt(t *testing.T) {
	cases := []struct {
		flags uint32
		want  prot
	}{
		{pfR, prot{Read: true}},
		{pfR | pfW, prot{Read: true, Write: true}},
		{pfR | pfX, prot{Read: true, Exec: true}},
		{pfR | pfW | pfX, prot{Read: true, Write: true, Exec: true}},
		{0, prot{}},
	}
	for _, c := range cases {
		if got := flagsToProt(c.flags); got != c.want {
			t.Errorf("flagsToProt(%03b) = %+v, want %+v", c.flags, got, c.want)
		}
	}
}
