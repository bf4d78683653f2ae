package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
	"github.com/salesight/salesight/internal/ingest"
	"github.com/salesight/salesight/internal/normalize"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS sales_records (
	user_id         TEXT             NOT NULL,
	id              TEXT             NOT NULL,
	date            TEXT             NOT NULL,
	product_name    TEXT             NOT NULL,
	product_id      TEXT             NOT NULL,
	category        TEXT             NOT NULL,
	quantity        INTEGER          NOT NULL,
	unit_price      DOUBLE PRECISION NOT NULL,
	revenue         DOUBLE PRECISION NOT NULL,
	cost_price      DOUBLE PRECISION NOT NULL,
	profit          DOUBLE PRECISION NOT NULL,
	profitability   DOUBLE PRECISION NOT NULL,
	discount        DOUBLE PRECISION NOT NULL,
	vat             DOUBLE PRECISION NOT NULL,
	margin          DOUBLE PRECISION NOT NULL,
	customer_type   TEXT             NOT NULL,
	region          TEXT             NOT NULL,
	sales_channel   TEXT             NOT NULL,
	shipping_status TEXT             NOT NULL,
	year            INTEGER          NOT NULL,
	created_at      TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, id)
);

CREATE INDEX IF NOT EXISTS idx_sales_records_user_date ON sales_records (user_id, date);
`

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize the database and import sales data files",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the sales_records table",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runSchema,
			},
			{
				Name:  "import",
				Usage: "Normalize local data files and append them to a user's record set",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "user",
						Usage:    "User id to import the records under",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing CSV, TSV, XLSX or JSON files",
						Value:   "./data/imports",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: runImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSchema(c *cli.Context) error {
	db, err := openDB(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(c.Context, schemaDDL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Println("Schema applied successfully")
	return nil
}

func runImport(c *cli.Context) error {
	userID := c.String("user")
	dataDir := c.String("data-dir")

	files, err := readDataFiles(dataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no data files found in %s", dataDir)
	}

	cfg := config.Load()
	normalizer := normalize.NewNormalizer(normalize.NewResolver(normalize.DefaultAliases()), cfg.Normalize)
	pipeline := ingest.NewPipeline(normalizer)

	records, err := pipeline.Process(files)
	if err != nil {
		return fmt.Errorf("failed to process data files: %w", err)
	}
	log.Printf("Normalized %d records from %d files", len(records), len(files))

	db, err := openDB(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := c.Context
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nextID, err := nextRecordID(ctx, tx, userID)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales_records (
			user_id, id, date, product_name, product_id, category, quantity,
			unit_price, revenue, cost_price, profit, profitability, discount,
			vat, margin, customer_type, region, sales_channel, shipping_status, year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		id := strconv.FormatInt(nextID+int64(i), 10)
		productID := r.ProductID
		if productID == "" {
			productID = "prod-" + id
		}
		if _, err := stmt.ExecContext(ctx,
			userID, id, r.Date, r.ProductName, productID, r.Category,
			r.Quantity, r.UnitPrice, r.Revenue, r.CostPrice, r.Profit,
			r.Profitability, r.Discount, r.VAT, r.Margin, r.CustomerType,
			r.Region, r.SalesChannel, r.ShippingStatus, r.Year,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Imported %d records for user %s", len(records), userID)
	return nil
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// nextRecordID continues the numbering after the user's highest numeric id.
func nextRecordID(ctx context.Context, tx *sql.Tx, userID string) (int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM sales_records WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read existing ids: %w", err)
	}
	defer rows.Close()

	var max int64
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan id: %w", err)
		}
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > max {
			max = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate ids: %w", err)
	}

	return max + 1, nil
}

var dataExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".xlsx": true,
	".xlsm": true,
	".xls":  true,
	".json": true,
}

func readDataFiles(dir string) ([]domain.UploadedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []domain.UploadedFile
	for _, entry := range entries {
		if entry.IsDir() || !dataExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		files = append(files, domain.UploadedFile{
			Filename: entry.Name(),
			Data:     data,
		})
	}
	return files, nil
}
