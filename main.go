package main

import (
	"context"
	"database/sql"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yumyai/eupathtable/internal/util"
	"github.com/yumyai/eupathtable/logger"
	mydb "github.com/yumyai/eupathtable/pkg/db"
	"github.com/yumyai/eupathtable/pkg/eupathdb"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const VERSION = "0.1.0"

var (
	eupath_data string

	outPath     string
	provider    string
	organism    string
	tableName   string
	endpoint    string
	byTable     bool
	timeoutSecs int

	dumpFile string
)

var rootCmd = &cobra.Command{
	Use:   "eupathtable",
	Short: "Fetches EuPathDB gene annotation tables and packages them as sqlite resources.",
}

var fetchCmd = &cobra.Command{
	Use:   "fetch --provider <site> --organism <name> --table <subtable>",
	Short: "Queries one provider webservice, flattens one sub-table, writes it to the resource db.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		client := eupathdb.NewClient()
		params := map[string]string{
			"o-tables": tableName,
			"o-fields": "primary_key",
		}
		resp, err := client.Query(ctx, provider, organism, params, endpoint,
			"json", time.Duration(timeoutSecs)*time.Second)
		if err != nil {
			logger.Fatal("query failed", zap.Error(err))
		}

		var flat eupathdb.FlatTable
		if byTable {
			flat = eupathdb.FlattenTable(resp, tableName, organism)
		} else {
			flat = eupathdb.FlattenAttributes(resp, tableName, organism)
		}

		writeResource(ctx, tableName, organism, flat)
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump --file <organism.txt[.gz]> --table <subtable>",
	Short: "Parses one sub-table out of a legacy organism dump file and packages it.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		flat, err := eupathdb.ParseTextTable(dumpFile, tableName)
		if err != nil {
			logger.Fatal("dump parse failed", zap.Error(err))
		}

		writeResource(ctx, tableName, path.Base(dumpFile), flat)
	},
}

func writeResource(ctx context.Context, name, organismLabel string, flat eupathdb.FlatTable) {
	sqlite, err := sql.Open("sqlite", outPath)
	if err != nil {
		logger.Fatal("cannot open resource db", zap.String("path", outPath), zap.Error(err))
	}
	defer sqlite.Close()

	pkgdb := mydb.NewPackageDB(sqlite)
	if err := pkgdb.Init(ctx); err != nil {
		logger.Fatal("cannot init resource db", zap.Error(err))
	}

	buildID, err := pkgdb.WriteTable(ctx, name, organismLabel, flat)
	if err != nil {
		logger.Fatal("cannot write table", zap.String("table", name), zap.Error(err))
	}

	logger.Info("packaged table",
		zap.String("table", name),
		zap.String("organism", organismLabel),
		zap.Int("rows", len(flat.Rows)),
		zap.String("build_id", buildID))
}

func init() {
	fetchCmd.Flags().StringVar(&provider, "provider", "", "EuPathDB site, e.g. tritrypdb")
	fetchCmd.Flags().StringVar(&organism, "organism", "", "organism name as the site spells it")
	fetchCmd.Flags().StringVar(&tableName, "table", "", "sub-table to flatten, e.g. GOTerms")
	fetchCmd.Flags().StringVar(&endpoint, "endpoint", "GeneQuestions/GenesByTaxon", "webservice question path")
	fetchCmd.Flags().BoolVar(&byTable, "by-table", false, "records carry a top-level gene id (table-type query)")
	fetchCmd.Flags().IntVar(&timeoutSecs, "timeout", 600, "request timeout in seconds")
	fetchCmd.MarkFlagRequired("provider")
	fetchCmd.MarkFlagRequired("organism")
	fetchCmd.MarkFlagRequired("table")

	dumpCmd.Flags().StringVar(&dumpFile, "file", "", "organism dump file, plain or .gz")
	dumpCmd.Flags().StringVar(&tableName, "table", "", "sub-table name after the TABLE: marker")
	dumpCmd.MarkFlagRequired("file")
	dumpCmd.MarkFlagRequired("table")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {

	if err := logger.InitLogger(logger.ParseLevel(os.Getenv("LOG_LEVEL"))); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	eupath_data = os.Getenv("EUPATH_DATA")

	if eupath_data == "" {
		logger.Warn("No local environment (EUPATH_DATA), using default value (./data)")
		eupath_data = "./data"
	}

	if !util.DirExists(eupath_data) {
		if err := os.MkdirAll(eupath_data, 0755); err != nil {
			logger.Fatal("cannot create data directory", zap.String("path", eupath_data), zap.Error(err))
		}
	}

	rootCmd.PersistentFlags().StringVar(&outPath, "out",
		path.Join(eupath_data, "eupath_tables.db"), "sqlite resource to write into")

	logger.Info("Start:", zap.String("Version", VERSION))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
