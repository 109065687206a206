package ledger

import (
	"encoding/json"
	"strings"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
	customError "github.com/pmerrill/mortgage-ledger/pkg/errors"
)

// csvHeader is the fixed column set of the flat export table.
var csvHeader = []string{
	"Date", "Total Payment", "Principal Paid", "Interest Paid",
	"Taxes", "Insurance", "Balance", "Check#",
}

// ExportJSON serializes the ledger for backup. The encoding round-trips
// every record field.
func ExportJSON(records []domain.PaymentRecord) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}

// ImportJSON parses a raw JSON backup. The payload is validated only for
// being an array of records; anything else aborts the import with a
// deserialization error and the caller's ledger is left untouched.
func ImportJSON(data []byte) ([]domain.PaymentRecord, error) {
	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, customError.WrapDeserializationFailed(customError.ErrMalformedImport)
	}
	var records []domain.PaymentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, customError.WrapDeserializationFailed(err)
	}
	return records, nil
}

// ExportCSV renders the ledger as a flat delimited table with CRLF rows.
// String fields are always quoted with embedded quotes doubled; numeric
// fields are written bare. The stdlib csv writer only quotes on demand, so
// the row encoding is done by hand to keep the format stable.
func ExportCSV(records []domain.PaymentRecord) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, rec := range records {
		b.WriteString("\r\n")
		fields := []string{
			quoteCSV(rec.Date.String()),
			rec.TotalPaid.String(),
			rec.PrincipalPart.String(),
			rec.InterestPart.String(),
			rec.TaxPart.String(),
			rec.InsurancePart.String(),
			rec.RemainingBalance.String(),
			quoteCSV(rec.CheckNumber),
		}
		b.WriteString(strings.Join(fields, ","))
	}
	return []byte(b.String())
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
