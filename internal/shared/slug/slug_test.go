package slug

import "testing"

func TestFromName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Paracetamol 500mg", "paracetamol-500mg"},
		{"  Vitamin C  ", "vitamin-c"},
		{"Obat Batuk & Flu", "obat-batuk-flu"},
		{"!!!", "produk"},
		{"", "produk"},
	}
	for _, c := range cases {
		if got := FromName(c.in); got != c.want {
			t.Errorf("FromName(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}
