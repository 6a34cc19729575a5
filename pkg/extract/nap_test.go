package extract

import (
	"testing"

	"github.com/K-Bak/geo-checker/pkg/patterns"
)

func TestNAPSignals(t *testing.T) {
	html := `<html><body><footer>
<p>Ring til os på +45 11 22 33 44 eller skriv til info@acme.dk</p>
<p>Acme Rens ApS · CVR: 12 34 56 78</p>
<p>Hovedgaden 12, 4000 Roskilde</p>
</footer></body></html>`

	p := patterns.MustDanish()
	nap := NAPSignals(html, p)

	if nap.Phone != "+4511223344" {
		t.Errorf("Phone = %q, want +4511223344", nap.Phone)
	}
	if nap.Email != "info@acme.dk" {
		t.Errorf("Email = %q, want info@acme.dk", nap.Email)
	}
	if nap.CVR != "12345678" {
		t.Errorf("CVR = %q, want 12345678", nap.CVR)
	}
	if nap.Address != "Hovedgaden 12, 4000 Roskilde" {
		t.Errorf("Address = %q, want Hovedgaden 12, 4000 Roskilde", nap.Address)
	}
}

func TestNAPSignalsEmptyPage(t *testing.T) {
	nap := NAPSignals("<html><body><p>Ingen kontaktdata her.</p></body></html>", patterns.MustDanish())
	if nap.CVR != "" || nap.Email != "" || nap.Phone != "" || nap.Address != "" {
		t.Errorf("NAPSignals() = %+v, want all empty", nap)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+45 11 22 33 44", "+4511223344"},
		{"11 22 33 44", "11223344"},
		{"11-22-33-44", "11223344"},
		{"  +45 11223344  ", "+4511223344"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
