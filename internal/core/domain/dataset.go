package domain

var (
	// OrderColumns is the canonical header of the order ledger.
	OrderColumns = []string{"ID", "Date", "Client", "Contact", "Produit", "Qte", "Desc", "Lien"}
	// ClientColumns is the canonical header of the client registry.
	ClientColumns = []string{"Date", "Nom", "Contact"}
)

// Dataset is a read-only tabular snapshot of a store.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// EmptyDataset returns a dataset with no rows and the given columns pre-declared.
func EmptyDataset(columns []string) Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Dataset{Columns: cols, Rows: [][]string{}}
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Records returns every row keyed by column name.
func (d Dataset) Records() []map[string]string {
	out := make([]map[string]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		rec := make(map[string]string, len(d.Columns))
		for i, col := range d.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}
