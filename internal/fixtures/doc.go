// Package fixtures defines the seed data model and discovers fixture
// sources on the filesystem.
//
// A Fixture is one source file holding an ordered list of tables, each with
// its rows. Two formats are supported:
//
// YAML (.yaml, .yml): a list of table blocks.
//
//	- table: users
//	  rows:
//	    - id: 1
//	      name: alice
//
// Spreadsheet (.xlsx): each sheet is a table named after the sheet, the
// first row holds column names, and every following row is one record.
//
// Discovery preserves first-discovery order across the search paths;
// directory contents are visited in lexicographic path order so a run is
// deterministic.
package fixtures
