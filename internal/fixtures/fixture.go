package fixtures

// Row is one record to insert, keyed by column name.
type Row map[string]interface{}

// Table is an ordered set of rows destined for one database table.
type Table struct {
	Name string
	Rows []Row
}

// Fixture is one seed data source file: an ordered collection of tables.
type Fixture struct {
	Path   string
	Tables []Table
}

// RowCount returns the total number of rows across all tables.
func (f *Fixture) RowCount() int {
	n := 0
	for _, t := range f.Tables {
		n += len(t.Rows)
	}
	return n
}

// TableNames returns every table name across the given fixtures in first
// appearance order, without duplicates. The purger uses this to know which
// tables a run touches.
func TableNames(fixtures []Fixture) []string {
	seen := map[string]bool{}
	var names []string
	for _, f := range fixtures {
		for _, t := range f.Tables {
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		}
	}
	return names
}
