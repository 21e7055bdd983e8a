// Package i18n carries the display locales and the API-facing message
// strings. Locales affect presentation text only; canonical identifiers
// never depend on them.
package i18n

// Locale is a supported display language.
type Locale string

const (
	LocaleZh Locale = "zh"
	LocaleEn Locale = "en"
)

// Default is the locale used when nothing is stored or requested.
const Default = LocaleZh

// Parse validates a locale token, falling back to the default for
// anything unknown or empty.
func Parse(s string) Locale {
	switch Locale(s) {
	case LocaleZh, LocaleEn:
		return Locale(s)
	default:
		return Default
	}
}

// Translations holds all message strings for one language.
type Translations map[string]string

// T returns the message table for the given locale.
func T(locale Locale) Translations {
	if locale == LocaleEn {
		return translationsEn
	}
	return translationsZh
}

var translationsZh = Translations{
	"catchup.banner":    "您有未完成的進度",
	"catchup.action":    "前往補讀",
	"day.noPlan":        "今日無讀經進度",
	"day.complete":      "恭喜！您已完成今日的讀經進度",
	"scripture.missing": "經文載入失敗",
	"import.success":    "進度匯入成功",
	"import.error":      "匯入失敗：檔案格式錯誤",
	"month.marked":      "已完成本月進度",
	"month.cleared":     "已清除本月進度",
	"month.notDone":     "本月尚有未完成章節，無法清除",
	"stats.annual":      "全年進度",
	"stats.monthly":     "本月進度",
}

var translationsEn = Translations{
	"catchup.banner":    "You have unfinished readings",
	"catchup.action":    "Catch up",
	"day.noPlan":        "No reading scheduled for this day",
	"day.complete":      "Congratulations! You finished today's reading",
	"scripture.missing": "Scripture text unavailable",
	"import.success":    "Progress imported successfully",
	"import.error":      "Import failed: invalid file format",
	"month.marked":      "Month marked as complete",
	"month.cleared":     "Month progress cleared",
	"month.notDone":     "Month still has unread chapters; refusing to clear",
	"stats.annual":      "Annual progress",
	"stats.monthly":     "Monthly progress",
}
