package history

// Conversión campo a campo entre Record y Transfer.
// La única diferencia de forma es la fecha: time.Time en el store, *Date en el wire.

func ToTransfer(r Record) Transfer {
	t := Transfer{
		ID:          r.ID,
		PatientID:   r.PatientID,
		PatientName: r.PatientName,
		Notes:       r.Notes,
	}
	if !r.CreationDate.IsZero() {
		d := NewDate(r.CreationDate)
		t.CreationDate = &d
	}
	return t
}

// ToTransfers nunca devuelve nil: una lista vacía se serializa como [].
func ToTransfers(rs []Record) []Transfer {
	out := make([]Transfer, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToTransfer(r))
	}
	return out
}

func ToRecord(t Transfer) Record {
	r := Record{
		ID:          t.ID,
		PatientID:   t.PatientID,
		PatientName: t.PatientName,
		Notes:       t.Notes,
	}
	if t.CreationDate != nil {
		r.CreationDate = t.CreationDate.Time
	}
	return r
}
