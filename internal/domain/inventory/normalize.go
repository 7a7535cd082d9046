package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName clave de agrupación por nombre de producto: sin tildes, sin
// mayúsculas y con espacios colapsados. "  Acetaminofén 500MG " y
// "acetaminofen 500mg" producen la misma clave.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}

// Matches indica si la consulta (normalizada) aparece dentro de alguno de los campos.
func Matches(query string, fields ...string) bool {
	q := NormalizeName(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(NormalizeName(f), q) {
			return true
		}
	}
	return false
}
