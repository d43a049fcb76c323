package eupathdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/eupathtable/logger"
)

// Markers of the line-oriented organism dump format.
const (
	geneIDMarker = "Gene ID: "
	tableMarker  = "TABLE: "
)

// stripColumnQuoting removes the 2-character prefix and 1-character suffix
// the dump format wraps column names in (e.g. "[*GO ID]").
func stripColumnQuoting(name string) string {
	if len(name) <= 3 {
		return name
	}
	return name[2 : len(name)-1]
}

// ParseTextTable extracts one named sub-table from a legacy organism dump
// file. The file is streamed in a single pass: every "Gene ID:" line sets
// the current gene context, and each matching "TABLE:" section contributes
// its tab-delimited block (header row first, terminated by a blank line)
// as rows tagged with that gene id.
//
// Files ending in .gz are decompressed on the fly. Retained for old dump
// archives; the active pipeline fetches over HTTP instead.
func ParseTextTable(path, tableName string) (FlatTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return FlatTable{}, fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return FlatTable{}, fmt.Errorf("open gzip dump file: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	logger.Info("parsing dump file",
		zap.String("file", path),
		zap.String("table", tableName))

	var out FlatTable
	currentGID := ""
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, geneIDMarker):
			currentGID = strings.TrimSpace(strings.TrimPrefix(line, geneIDMarker))

		case line == tableMarker+tableName:
			if err := parseTableBlock(scanner, currentGID, &out); err != nil {
				return FlatTable{}, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return FlatTable{}, fmt.Errorf("read dump file: %w", err)
	}

	logger.Info("dump parse finished",
		zap.String("file", path),
		zap.Int("rows", len(out.Rows)))
	return out, nil
}

// parseTableBlock consumes one tab-delimited block (header first, blank
// line terminated) and appends its rows under the given gene id. The
// column schema is fixed by the first block seen; later blocks of the same
// table share it by the dump format's contract.
func parseTableBlock(scanner *bufio.Scanner, gid string, out *FlatTable) error {
	if !scanner.Scan() {
		return scanner.Err()
	}
	header := strings.Split(scanner.Text(), "\t")

	if out.Columns == nil {
		out.Columns = make([]string, 0, len(header)+1)
		out.Columns = append(out.Columns, GIDColumn)
		for _, name := range header {
			out.Columns = append(out.Columns, stripColumnQuoting(name))
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		values := strings.Split(line, "\t")
		row := make(FlatRow, len(out.Columns))
		row[GIDColumn] = gid
		for i, col := range out.Columns[1:] {
			if i < len(values) {
				row[col] = values[i]
			} else {
				row[col] = ""
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return scanner.Err()
}
