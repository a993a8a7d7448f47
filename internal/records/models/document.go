package models

import (
	"strconv"
	"time"

	dErrors "geodocs/pkg/domain-errors"
)

// Document is a planning record. Language and AreaID are optional; the
// stakeholder set lives in its own association table and is carried separately
// from the row.
type Document struct {
	ID          int64
	Title       string
	Description string
	Scale       string
	DocType     string
	Language    *string
	Issued      IssuanceDate
	AreaID      *int64
}

// IssuanceDate is the partial date a document was issued. Year is required;
// month and day are optional and, when present, held as zero-padded two-digit
// strings ("05"). An absent component is the empty string.
type IssuanceDate struct {
	Year  string
	Month string
	Day   string
}

// Validate checks the date before any write touches storage: the year must be
// a non-negative integer, the month 1-12, the day 1-31, and a fully specified
// triple must name a real calendar date.
func (d IssuanceDate) Validate() error {
	year, err := strconv.Atoi(d.Year)
	if err != nil || year < 0 {
		return dErrors.Newf(dErrors.CodeValidation, "invalid issuance year %q", d.Year)
	}

	month := 0
	if d.Month != "" {
		month, err = strconv.Atoi(d.Month)
		if err != nil || month < 1 || month > 12 {
			return dErrors.Newf(dErrors.CodeValidation, "invalid issuance month %q", d.Month)
		}
	}

	day := 0
	if d.Day != "" {
		day, err = strconv.Atoi(d.Day)
		if err != nil || day < 1 || day > 31 {
			return dErrors.Newf(dErrors.CodeValidation, "invalid issuance day %q", d.Day)
		}
	}

	if d.Month != "" && d.Day != "" {
		// time.Date normalizes overflow (Feb 30 -> Mar 2), so a changed
		// month or day exposes an impossible calendar date.
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Month() != time.Month(month) || t.Day() != day {
			return dErrors.Newf(dErrors.CodeValidation, "no such calendar date %s-%s-%s", d.Year, d.Month, d.Day)
		}
	}
	return nil
}

// Normalized returns the date with month and day padded to two digits.
func (d IssuanceDate) Normalized() IssuanceDate {
	return IssuanceDate{Year: d.Year, Month: pad2(d.Month), Day: pad2(d.Day)}
}

// Compare orders two issuance dates: year first, then month, then day, with
// absent components treated as the smallest value. Returns -1, 0, or 1.
func (d IssuanceDate) Compare(other IssuanceDate) int {
	if c := cmpNumeric(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmpNumeric(d.Month, other.Month); c != 0 {
		return c
	}
	return cmpNumeric(d.Day, other.Day)
}

func (d IssuanceDate) String() string {
	s := d.Year
	if d.Month != "" {
		s += "-" + d.Month
	}
	if d.Day != "" {
		s += "-" + d.Day
	}
	return s
}

func cmpNumeric(a, b string) int {
	an, bn := 0, 0
	if a != "" {
		an, _ = strconv.Atoi(a)
	}
	if b != "" {
		bn, _ = strconv.Atoi(b)
	}
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	}
	return 0
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
