// Package bible holds the canonical book table shared by the plan, the
// scripture store and the progress keys.
//
// Book identity is the lowercase ID code, never a display string: the
// source data ships localized names and abbreviations that have drifted
// between revisions, so everything durable keys on Book.ID.
package bible

// TotalChapters is the number of chapters across all 66 canonical books.
const TotalChapters = 1189

// Book holds metadata for a single canonical book.
type Book struct {
	ID       string // stable lowercase code, e.g. "gen"
	Order    int    // canonical position, 1-66
	Chapters int    // chapter count
	NameEn   string // English display name
	NameZh   string // Traditional Chinese display name
	AbbrZh   string // Traditional Chinese abbreviation
}

// Books contains all 66 canonical books in canonical order.
var Books = []Book{
	// Old Testament
	{"gen", 1, 50, "Genesis", "創世記", "創"},
	{"exo", 2, 40, "Exodus", "出埃及記", "出"},
	{"lev", 3, 27, "Leviticus", "利未記", "利"},
	{"num", 4, 36, "Numbers", "民數記", "民"},
	{"deu", 5, 34, "Deuteronomy", "申命記", "申"},
	{"jos", 6, 24, "Joshua", "約書亞記", "書"},
	{"jdg", 7, 21, "Judges", "士師記", "士"},
	{"rut", 8, 4, "Ruth", "路得記", "得"},
	{"1sa", 9, 31, "1 Samuel", "撒母耳記上", "撒上"},
	{"2sa", 10, 24, "2 Samuel", "撒母耳記下", "撒下"},
	{"1ki", 11, 22, "1 Kings", "列王紀上", "王上"},
	{"2ki", 12, 25, "2 Kings", "列王紀下", "王下"},
	{"1ch", 13, 29, "1 Chronicles", "歷代志上", "代上"},
	{"2ch", 14, 36, "2 Chronicles", "歷代志下", "代下"},
	{"ezr", 15, 10, "Ezra", "以斯拉記", "拉"},
	{"neh", 16, 13, "Nehemiah", "尼希米記", "尼"},
	{"est", 17, 10, "Esther", "以斯帖記", "斯"},
	{"job", 18, 42, "Job", "約伯記", "伯"},
	{"psa", 19, 150, "Psalms", "詩篇", "詩"},
	{"pro", 20, 31, "Proverbs", "箴言", "箴"},
	{"ecc", 21, 12, "Ecclesiastes", "傳道書", "傳"},
	{"sng", 22, 8, "Song of Solomon", "雅歌", "歌"},
	{"isa", 23, 66, "Isaiah", "以賽亞書", "賽"},
	{"jer", 24, 52, "Jeremiah", "耶利米書", "耶"},
	{"lam", 25, 5, "Lamentations", "耶利米哀歌", "哀"},
	{"ezk", 26, 48, "Ezekiel", "以西結書", "結"},
	{"dan", 27, 12, "Daniel", "但以理書", "但"},
	{"hos", 28, 14, "Hosea", "何西阿書", "何"},
	{"jol", 29, 3, "Joel", "約珥書", "珥"},
	{"amo", 30, 9, "Amos", "阿摩司書", "摩"},
	{"oba", 31, 1, "Obadiah", "俄巴底亞書", "俄"},
	{"jon", 32, 4, "Jonah", "約拿書", "拿"},
	{"mic", 33, 7, "Micah", "彌迦書", "彌"},
	{"nam", 34, 3, "Nahum", "那鴻書", "鴻"},
	{"hab", 35, 3, "Habakkuk", "哈巴谷書", "哈"},
	{"zep", 36, 3, "Zephaniah", "西番雅書", "番"},
	{"hag", 37, 2, "Haggai", "哈該書", "該"},
	{"zec", 38, 14, "Zechariah", "撒迦利亞書", "亞"},
	{"mal", 39, 4, "Malachi", "瑪拉基書", "瑪"},
	// New Testament
	{"mat", 40, 28, "Matthew", "馬太福音", "太"},
	{"mrk", 41, 16, "Mark", "馬可福音", "可"},
	{"luk", 42, 24, "Luke", "路加福音", "路"},
	{"jhn", 43, 21, "John", "約翰福音", "約"},
	{"act", 44, 28, "Acts", "使徒行傳", "徒"},
	{"rom", 45, 16, "Romans", "羅馬書", "羅"},
	{"1co", 46, 16, "1 Corinthians", "哥林多前書", "林前"},
	{"2co", 47, 13, "2 Corinthians", "哥林多後書", "林後"},
	{"gal", 48, 6, "Galatians", "加拉太書", "加"},
	{"eph", 49, 6, "Ephesians", "以弗所書", "弗"},
	{"php", 50, 4, "Philippians", "腓立比書", "腓"},
	{"col", 51, 4, "Colossians", "歌羅西書", "西"},
	{"1th", 52, 5, "1 Thessalonians", "帖撒羅尼迦前書", "帖前"},
	{"2th", 53, 3, "2 Thessalonians", "帖撒羅尼迦後書", "帖後"},
	{"1ti", 54, 6, "1 Timothy", "提摩太前書", "提前"},
	{"2ti", 55, 4, "2 Timothy", "提摩太後書", "提後"},
	{"tit", 56, 3, "Titus", "提多書", "多"},
	{"phm", 57, 1, "Philemon", "腓利門書", "門"},
	{"heb", 58, 13, "Hebrews", "希伯來書", "來"},
	{"jas", 59, 5, "James", "雅各書", "雅"},
	{"1pe", 60, 5, "1 Peter", "彼得前書", "彼前"},
	{"2pe", 61, 3, "2 Peter", "彼得後書", "彼後"},
	{"1jn", 62, 5, "1 John", "約翰一書", "約一"},
	{"2jn", 63, 1, "2 John", "約翰二書", "約二"},
	{"3jn", 64, 1, "3 John", "約翰三書", "約三"},
	{"jud", 65, 1, "Jude", "猶大書", "猶"},
	{"rev", 66, 22, "Revelation", "啟示錄", "啟"},
}

var (
	byID     = make(map[string]*Book, len(Books))
	byNameEn = make(map[string]*Book, len(Books))
	byNameZh = make(map[string]*Book, len(Books))
	byAbbrZh = make(map[string]*Book, len(Books))
)

func init() {
	for i := range Books {
		b := &Books[i]
		byID[b.ID] = b
		byNameEn[b.NameEn] = b
		byNameZh[b.NameZh] = b
		byAbbrZh[b.AbbrZh] = b
	}
}

// ByID returns the book with the given canonical ID, or nil.
func ByID(id string) *Book {
	return byID[id]
}

// ByNameEn returns the book with the given English display name, or nil.
func ByNameEn(name string) *Book {
	return byNameEn[name]
}

// ByNameZh returns the book with the given Chinese display name, or nil.
func ByNameZh(name string) *Book {
	return byNameZh[name]
}

// ByAbbrZh returns the book with the given Chinese abbreviation, or nil.
func ByAbbrZh(abbr string) *Book {
	return byAbbrZh[abbr]
}

// Resolve maps any known token (canonical ID, Chinese abbreviation,
// Chinese or English display name) to its book. Used when normalizing
// progress blobs produced by earlier revisions of the data files.
func Resolve(token string) *Book {
	if b := byID[token]; b != nil {
		return b
	}
	if b := byAbbrZh[token]; b != nil {
		return b
	}
	if b := byNameZh[token]; b != nil {
		return b
	}
	return byNameEn[token]
}

// HasChapter reports whether n is a real chapter number of the book.
func (b *Book) HasChapter(n int) bool {
	return b != nil && n >= 1 && n <= b.Chapters
}
