package currency

import "testing"

func TestSymbolKnownCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"PHP", "₱"},
		{"USD", "$"},
		{"EUR", "€"},
		{"JPY", "¥"},
	}
	for _, tc := range tests {
		if got := Symbol(tc.code); got != tc.want {
			t.Fatalf("Symbol(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestSymbolUnknownFallsBackToCode(t *testing.T) {
	if got := Symbol("XTS"); got != "XTS" {
		t.Fatalf("Symbol(XTS) = %q, want the code back", got)
	}
	if got := Symbol(""); got != "" {
		t.Fatalf("Symbol(\"\") = %q, want empty", got)
	}
}

func TestLookup(t *testing.T) {
	c, ok := Lookup("PHP")
	if !ok {
		t.Fatal("Lookup(PHP) not found")
	}
	if c.Name != "Philippine Peso" || c.Symbol != "₱" {
		t.Fatalf("Lookup(PHP) = %+v", c)
	}
	if _, ok := Lookup("php"); ok {
		t.Fatal("Lookup is code-exact, lowercase must not match")
	}
	if _, ok := Lookup("XTS"); ok {
		t.Fatal("Lookup(XTS) should not be found")
	}
}

func TestAllOrdering(t *testing.T) {
	all := All()
	if len(all) != len(registry) {
		t.Fatalf("All() returned %d currencies, want %d", len(all), len(registry))
	}
	if all[0].Code != "PHP" {
		t.Fatalf("All()[0] = %s, want PHP first", all[0].Code)
	}
	for i := 2; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("All() not sorted by name after PHP: %q > %q", all[i-1].Name, all[i].Name)
		}
	}
}
