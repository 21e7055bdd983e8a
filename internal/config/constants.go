package config

// Default paths for the application data files
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./reading-tracker.db"

	// DefaultPlanPath is the default path for the yearly reading plan JSON
	DefaultPlanPath = "./data/reading_plan.json"

	// DefaultScriptureZhPath is the default path for the Chinese scripture lines
	DefaultScriptureZhPath = "./data/bible_zh.json"

	// DefaultScriptureEnPath is the default path for the English scripture lines
	DefaultScriptureEnPath = "./data/bible_en.json"
)
