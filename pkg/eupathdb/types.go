package eupathdb

// Wire types for the EuPathDB webservice JSON responses, plus the flat
// table shape everything gets normalized into.

// Field is a single name/value pair inside a gene record or a table row.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TableRow is one entry of a gene's sub-table.
type TableRow struct {
	Fields []Field `json:"fields"`
}

// GeneTable is a named sub-table attached to a gene record, e.g. GO terms
// or metabolic pathways.
type GeneTable struct {
	Rows []TableRow `json:"rows"`
}

// GeneRecord is one record of the webservice recordset. ID is only present
// on table-type queries; attribute-type queries carry the gene id inside
// Fields as a composite "<id>/<provider>" value.
type GeneRecord struct {
	ID     string               `json:"id"`
	Fields []Field              `json:"fields"`
	Tables map[string]GeneTable `json:"tables"`
}

type recordSet struct {
	Records []GeneRecord `json:"records"`
}

type responseBody struct {
	RecordSet recordSet `json:"recordset"`
}

// Response is the envelope every webservice question answers with:
// {response: {recordset: {records: [...]}}}
type Response struct {
	Response responseBody `json:"response"`
}

// Records returns the gene record list, nil-safe.
func (r *Response) Records() []GeneRecord {
	if r == nil {
		return nil
	}
	return r.Response.RecordSet.Records
}

// EmptyResponse is the canonical zero-record value. The query layer hands
// it back on connection failure so callers see a timeout and an organism
// with no data the same way.
func EmptyResponse() *Response {
	return &Response{
		Response: responseBody{
			RecordSet: recordSet{Records: []GeneRecord{}},
		},
	}
}

// FlatRow maps column name to value. Every row carries a GID column.
type FlatRow map[string]string

// GIDColumn is the join key column present in every flattened table.
const GIDColumn = "GID"

// FlatTable is the output of the flatteners: an ordered column schema and
// one row per (gene, sub-table entry) pair. Columns is fixed once per
// table; every row holds exactly those keys.
type FlatTable struct {
	Columns []string
	Rows    []FlatRow
}

// Empty reports whether the table holds no rows.
func (t FlatTable) Empty() bool {
	return len(t.Rows) == 0
}
