package eupathdb

import (
	"errors"
	"reflect"
	"testing"
)

func testResponse(records ...GeneRecord) *Response {
	r := EmptyResponse()
	r.Response.RecordSet.Records = records
	return r
}

func geneWithRows(compositeID string, tableName string, rows ...TableRow) GeneRecord {
	return GeneRecord{
		Fields: []Field{
			{Name: "organism", Value: "Leishmania major"},
			{Name: "primary_key", Value: compositeID},
		},
		Tables: map[string]GeneTable{tableName: {Rows: rows}},
	}
}

func goRow(goID, ontology string) TableRow {
	return TableRow{Fields: []Field{
		{Name: "GO ID", Value: goID},
		{Name: "Ontology", Value: ontology},
	}}
}

func TestParseCompositeID(t *testing.T) {

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:     "SlashSeparator",
			input:    "LmjF.01.0030/TriTrypDB",
			expected: "LmjF.01.0030",
		},
		{
			name:     "CommaSeparator",
			input:    "TGME49_233460,Toxoplasma gondii ME49",
			expected: "TGME49_233460",
		},
		{
			name:        "NoSeparator",
			input:       "LmjF.01.0030",
			shouldError: true,
		},
		{
			name:        "SeparatorFirst",
			input:       "/TriTrypDB",
			shouldError: true,
		},
		{
			name:        "Empty",
			input:       "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompositeID(tt.input)

			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				var malformed *MalformedIDError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedIDError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Fatalf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFlattenAttributesEmptyResponse(t *testing.T) {

	flat := FlattenAttributes(EmptyResponse(), "GOTerms", "Leishmania major")

	if !flat.Empty() {
		t.Fatalf("expected empty table, got %d rows", len(flat.Rows))
	}
}

// Gene A has one GOTerms entry, gene B has none: exactly one output row,
// keyed by A's derived id.
func TestFlattenAttributesDropsEmptyGenes(t *testing.T) {

	resp := testResponse(
		geneWithRows("LmjF.01.0030/TriTrypDB", "GOTerms", goRow("GO:0005515", "F")),
		geneWithRows("LmjF.01.0040/TriTrypDB", "GOTerms"),
	)

	flat := FlattenAttributes(resp, "GOTerms", "Leishmania major")

	if len(flat.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(flat.Rows))
	}
	if flat.Rows[0][GIDColumn] != "LmjF.01.0030" {
		t.Fatalf("wrong GID: %q", flat.Rows[0][GIDColumn])
	}
}

func TestFlattenAttributesFanOut(t *testing.T) {

	resp := testResponse(
		geneWithRows("LmjF.01.0030/TriTrypDB", "GOTerms",
			goRow("GO:0005515", "F"),
			goRow("GO:0046872", "F"),
		),
		geneWithRows("LmjF.01.0050/TriTrypDB", "GOTerms",
			goRow("GO:0003677", "F"),
		),
	)

	flat := FlattenAttributes(resp, "GOTerms", "Leishmania major")

	if len(flat.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(flat.Rows))
	}

	expectedColumns := []string{"GID", "GO ID", "Ontology"}
	if !reflect.DeepEqual(flat.Columns, expectedColumns) {
		t.Fatalf("wrong columns: %v", flat.Columns)
	}

	// A multi-row gene repeats its GID.
	if flat.Rows[0][GIDColumn] != "LmjF.01.0030" || flat.Rows[1][GIDColumn] != "LmjF.01.0030" {
		t.Fatalf("fan-out rows should share a GID: %v", flat.Rows)
	}
	if flat.Rows[2][GIDColumn] != "LmjF.01.0050" {
		t.Fatalf("wrong GID on last row: %q", flat.Rows[2][GIDColumn])
	}

	// Every row holds exactly the captured schema.
	for _, row := range flat.Rows {
		if len(row) != len(expectedColumns) {
			t.Fatalf("row does not match schema: %v", row)
		}
	}
}

func TestFlattenAttributesSkipsMalformedID(t *testing.T) {

	bad := GeneRecord{
		Fields: []Field{{Name: "primary_key", Value: "no-separator-here"}},
		Tables: map[string]GeneTable{"GOTerms": {Rows: []TableRow{goRow("GO:0005515", "F")}}},
	}
	resp := testResponse(
		bad,
		geneWithRows("LmjF.01.0030/TriTrypDB", "GOTerms", goRow("GO:0046872", "F")),
	)

	flat := FlattenAttributes(resp, "GOTerms", "Leishmania major")

	if len(flat.Rows) != 1 {
		t.Fatalf("expected malformed gene to be skipped, got %d rows", len(flat.Rows))
	}
	if flat.Rows[0][GIDColumn] != "LmjF.01.0030" {
		t.Fatalf("wrong GID: %q", flat.Rows[0][GIDColumn])
	}
}

func TestFlattenAttributesIdempotent(t *testing.T) {

	resp := testResponse(
		geneWithRows("LmjF.01.0030/TriTrypDB", "GOTerms",
			goRow("GO:0005515", "F"),
			goRow("GO:0046872", "F"),
		),
	)

	first := FlattenAttributes(resp, "GOTerms", "Leishmania major")
	second := FlattenAttributes(resp, "GOTerms", "Leishmania major")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("flattening is not pure:\n%v\n%v", first, second)
	}
}

func TestFlattenTable(t *testing.T) {

	resp := testResponse(
		GeneRecord{
			ID:     "PF3D7_0102900",
			Tables: map[string]GeneTable{"Pathways": {Rows: []TableRow{goRow("ec00010", "glycolysis")}}},
		},
		GeneRecord{
			ID:     "PF3D7_0103000",
			Tables: map[string]GeneTable{"Pathways": {Rows: []TableRow{}}},
		},
	)

	flat := FlattenTable(resp, "Pathways", "Plasmodium falciparum 3D7")

	if len(flat.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(flat.Rows))
	}
	if flat.Rows[0][GIDColumn] != "PF3D7_0102900" {
		t.Fatalf("wrong GID: %q", flat.Rows[0][GIDColumn])
	}
}

func TestFlattenTableEmptyResponse(t *testing.T) {

	flat := FlattenTable(EmptyResponse(), "Pathways", "Plasmodium falciparum 3D7")

	if !flat.Empty() {
		t.Fatalf("expected empty table, got %d rows", len(flat.Rows))
	}
}
