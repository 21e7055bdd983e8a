// Package cli carries the maintenance commands that run outside the
// HTTP server: progress export, progress import, and plan validation.
package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bibleplan/tracker/internal/config"
	"github.com/bibleplan/tracker/internal/database"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	"github.com/bibleplan/tracker/internal/exporters"
)

type ExportProgressCommand struct {
	DatabasePath string
	OutputDir    string
}

func NewExportProgressCommand() *ExportProgressCommand {
	return &ExportProgressCommand{}
}

func (cmd *ExportProgressCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-progress", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.OutputDir, "out", ".", "Directory to write the export into")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-progress [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write the stored reading progress to a dated JSON file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-progress\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-progress -db ./reading-tracker.db -out ./backups\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportProgressCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	snap, err := dbprogress.NewRepository(db.DB).Load()
	if err != nil {
		return err
	}

	path, err := exporters.NewProgressExporter().WriteFile(snap, cmd.OutputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d chapters to %s\n", snap.Count(), path)
	return nil
}
