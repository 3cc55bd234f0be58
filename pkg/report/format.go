package report

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// toUpper upper-cases banner labels. Casers keep state, so one is built per call.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// FormatDuration renders d as HH:MM:SS, dropping the hour when it is zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h == 0 {
		return fmt.Sprintf("%02d:%02d", m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatGrouped prints n with thousands separators and at most two decimals.
func formatGrouped(n float64) string {
	p := message.NewPrinter(language.English)
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return p.Sprintf("%d", int64(n))
	}
	return p.Sprintf("%.2f", n)
}

// amount formats a currency field, e.g. "15,000 AED".
func (f FormData) amount(key string) string {
	n, ok := f.Number(key)
	if !ok {
		return NotAvailable
	}
	return formatGrouped(n) + " AED"
}

// percent formats a 0-1 ratio field as a percentage with the given decimals.
func (f FormData) percent(key string, decimals int) string {
	n, ok := f.Number(key)
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("%.*f%%", decimals, n*100)
}

// years formats a count of years, e.g. "5 Years".
func (f FormData) years(key string) string {
	if s := f.Text(key); s != "" {
		return s + " Years"
	}
	return NotAvailable
}

// probability formats a 0-1 probability as "91.0%".
func probability(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// roleLabel names attendee i (0-based): A..Z, then AA, AB, ...
func roleLabel(i int) string {
	var b []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return "Participant " + string(b)
}
