package export

import (
	"strings"
	"time"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
)

// CSV header, fixed field order: type, amount, date, method, description.
var csvHeader = []string{"Tipo", "Monto", "Fecha", "Método", "Descripción"}

// SerializeCSV produces a comma-separated text block over an ordered
// entry sequence. Row order matches input order; callers pass entries in
// their intended export order (filtered, unpaginated, newest first).
// Empty input is a user-facing condition, not a header-only file.
func SerializeCSV(entries []*domain.Entry, loc *time.Location) (string, error) {
	if len(entries) == 0 {
		return "", domain.ErrEmptyExport
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, e := range entries {
		row := []string{
			e.Type.Label(),
			e.Amount.String(),
			e.Date.In(loc).Format("02/01/2006"),
			e.Method.Label(),
			e.Description,
		}
		for i, field := range row {
			row[i] = escapeField(field)
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n"), nil
}

// escapeField doubles embedded quotes first, then wraps the field in
// quotes when it contains a comma.
func escapeField(field string) string {
	escaped := strings.ReplaceAll(field, `"`, `""`)
	if strings.Contains(escaped, ",") {
		return `"` + escaped + `"`
	}
	return escaped
}
