package history

import (
	"bytes"
	"strings"
	"time"
)

// DateLayout es el formato de fecha civil usado en el wire (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Record es la forma persistida de una historia de paciente.
// CreationDate guarda la fecha civil a medianoche UTC; zero = sin fecha.
type Record struct {
	ID string

	PatientID   int
	PatientName string

	CreationDate time.Time

	Notes string
}

// Transfer es la forma expuesta por HTTP.
type Transfer struct {
	ID           string `json:"id"`
	PatientID    int    `json:"patId"`
	PatientName  string `json:"patient"`
	CreationDate *Date  `json:"creationDate"`
	Notes        string `json:"notes"`
}

// Date es una fecha sin hora ni zona. Se serializa como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t a su día calendario en UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
