package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bibleplan/tracker/internal/config"
	"github.com/bibleplan/tracker/internal/database"
	dbprogress "github.com/bibleplan/tracker/internal/database/progress"
	"github.com/bibleplan/tracker/internal/importers"
)

type ImportProgressCommand struct {
	DatabasePath string
	File         string
}

func NewImportProgressCommand() *ImportProgressCommand {
	return &ImportProgressCommand{}
}

func (cmd *ImportProgressCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-progress", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.File, "file", "", "Progress JSON file to import (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-progress [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace the stored reading progress with the contents of a JSON export.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-progress -file ./BiblePlan_Progress_260115.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}

	return nil
}

func (cmd *ImportProgressCommand) Run() error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", cmd.File, err)
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

	pipeline := importers.NewPipeline(dbprogress.NewRepository(db.DB))
	_, res, err := pipeline.Import(data)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d chapters (%d unknown keys skipped)\n", res.Imported, res.Skipped)
	return nil
}
