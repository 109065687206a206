package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date with no time component. It marshals to and from
// the "2006-01-02" form used throughout the ledger and its serialized files.
type Date struct {
	time.Time
}

func DateVal(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date truncated to midnight UTC.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return DateVal(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Equal(e Date) bool {
	return d.Time.Equal(e.Time)
}

func (d Date) Before(e Date) bool {
	return d.Time.Before(e.Time)
}

// Compare orders dates ascending; it is the comparator used for ledger sorting.
func (d Date) Compare(e Date) int {
	return d.Time.Compare(e.Time)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte("\"" + d.Format("2006-01-02") + "\""), nil
}

// Value implements driver.Valuer so dates can be stored via database/sql.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateVal(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
