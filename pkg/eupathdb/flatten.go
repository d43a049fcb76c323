package eupathdb

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/eupathtable/logger"
)

// ParseCompositeID recovers the canonical gene id from a composite value
// of the form "<id>/<provider>" or "<id>,<rest>" by cutting at the first
// separator. A value with no separator, or nothing before it, is malformed.
func ParseCompositeID(value string) (string, error) {
	idx := strings.IndexAny(value, "/,")
	if idx <= 0 {
		return "", &MalformedIDError{Value: value}
	}
	return value[:idx], nil
}

// deriveGID finds the composite identifier among a record's fields. The
// webservices do not agree on the field name across sites, so the first
// field whose value looks like "<id>/<provider>" wins.
func deriveGID(rec GeneRecord) (string, error) {
	for _, f := range rec.Fields {
		if strings.ContainsAny(f.Value, "/,") {
			return ParseCompositeID(f.Value)
		}
	}
	return "", &MalformedIDError{Value: ""}
}

// keepWithRows drops every gene record with no entry in the named
// sub-table, so genes without data never show up as null rows.
func keepWithRows(records []GeneRecord, tableName string) []GeneRecord {
	kept := make([]GeneRecord, 0, len(records))
	for _, rec := range records {
		if len(rec.Tables[tableName].Rows) > 0 {
			kept = append(kept, rec)
		}
	}
	return kept
}

// captureSchema fixes the output columns from the first retained gene's
// first row: GID followed by that row's field names. Every later row is
// zipped against this schema by position, per the webservice contract that
// all rows of one named table share a schema.
func captureSchema(first TableRow) []string {
	columns := make([]string, 0, len(first.Fields)+1)
	columns = append(columns, GIDColumn)
	for _, f := range first.Fields {
		columns = append(columns, f.Name)
	}
	return columns
}

func flattenRow(columns []string, gid string, row TableRow) FlatRow {
	flat := make(FlatRow, len(columns))
	flat[GIDColumn] = gid
	for i, col := range columns[1:] {
		if i < len(row.Fields) {
			flat[col] = row.Fields[i].Value
		} else {
			flat[col] = ""
		}
	}
	return flat
}

// FlattenAttributes unions one named sub-table across all genes of an
// attribute-type query answer into a single flat table keyed by GID. The
// gene id is derived from the composite identifier carried in each
// record's fields. Genes whose composite id cannot be parsed are skipped
// with a warning rather than aborting the whole organism.
func FlattenAttributes(resp *Response, tableName, organism string) FlatTable {
	records := resp.Records()
	logger.Info("flattening attribute query",
		zap.String("organism", organism),
		zap.String("table", tableName),
		zap.Int("genes", len(records)))

	kept := keepWithRows(records, tableName)
	if len(kept) == 0 {
		logger.Info("no genes with table data",
			zap.String("organism", organism),
			zap.String("table", tableName))
		return FlatTable{}
	}

	columns := captureSchema(kept[0].Tables[tableName].Rows[0])
	out := FlatTable{Columns: columns}

	for i, rec := range kept {
		gid, err := deriveGID(rec)
		if err != nil {
			logger.Warn("skipping gene with unparseable id",
				zap.String("organism", organism),
				zap.Error(err))
			continue
		}
		for _, row := range rec.Tables[tableName].Rows {
			out.Rows = append(out.Rows, flattenRow(columns, gid, row))
		}
		if (i+1)%1000 == 0 {
			logger.Info("flatten progress",
				zap.String("organism", organism),
				zap.Int("genes_done", i+1),
				zap.Int("genes_total", len(kept)))
		}
	}

	logger.Info("flatten finished",
		zap.String("organism", organism),
		zap.String("table", tableName),
		zap.Int("rows", len(out.Rows)))
	return out
}

// FlattenTable is FlattenAttributes for table-type query answers, where
// each record already carries its gene id directly.
func FlattenTable(resp *Response, tableName, organism string) FlatTable {
	records := resp.Records()
	logger.Info("flattening table query",
		zap.String("organism", organism),
		zap.String("table", tableName),
		zap.Int("genes", len(records)))

	kept := keepWithRows(records, tableName)
	if len(kept) == 0 {
		logger.Info("no genes with table data",
			zap.String("organism", organism),
			zap.String("table", tableName))
		return FlatTable{}
	}

	columns := captureSchema(kept[0].Tables[tableName].Rows[0])
	out := FlatTable{Columns: columns}

	for _, rec := range kept {
		if rec.ID == "" {
			logger.Warn("skipping gene record without id",
				zap.String("organism", organism))
			continue
		}
		for _, row := range rec.Tables[tableName].Rows {
			out.Rows = append(out.Rows, flattenRow(columns, rec.ID, row))
		}
	}

	logger.Info("flatten finished",
		zap.String("organism", organism),
		zap.String("table", tableName),
		zap.Int("rows", len(out.Rows)))
	return out
}
