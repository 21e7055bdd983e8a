package scripture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibleplan/tracker/internal/i18n"
)

func TestParse_ChineseAbbreviationTokens(t *testing.T) {
	store := Parse(i18n.LocaleZh, []string{
		"創1:1 起初神創造天地",
		"創1:2 地是空虛混沌",
		"創2:1 天地萬物都造齊了",
	})

	require.Equal(t, 0, store.Skipped())
	require.Equal(t, 2, store.ChapterCount())

	verses, err := store.Chapter("gen", 1)
	require.NoError(t, err)
	require.Len(t, verses, 2)
	assert.Equal(t, 1, verses[0].Number)
	assert.Equal(t, "起初神創造天地", verses[0].Text)
}

func TestParse_EnglishFullNameTokens(t *testing.T) {
	store := Parse(i18n.LocaleEn, []string{
		"Genesis1:1 In the beginning God created the heaven and the earth.",
		"1 Samuel3:10 And the LORD came, and stood, and called as at other times.",
	})

	require.Equal(t, 0, store.Skipped())

	verses, err := store.Chapter("1sa", 3)
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, 10, verses[0].Number)
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	store := Parse(i18n.LocaleZh, []string{
		"創1:1 起初",
		"this line has no reference",
		"亞特蘭提斯1:1 未知書卷",
		"創99:1 不存在的章",
		"",
	})

	assert.Equal(t, 4, store.Skipped())
	assert.Equal(t, 1, store.ChapterCount())
}

func TestChapter_Missing(t *testing.T) {
	store := Parse(i18n.LocaleZh, []string{"創1:1 起初"})

	_, err := store.Chapter("gen", 2)
	assert.ErrorIs(t, err, ErrChapterMissing)

	_, err = store.Chapter("exo", 1)
	assert.ErrorIs(t, err, ErrChapterMissing)
}

func TestChapter_VersesSorted(t *testing.T) {
	store := Parse(i18n.LocaleZh, []string{
		"創1:3 神說要有光",
		"創1:1 起初",
		"創1:2 地是空虛混沌",
	})

	verses, err := store.Chapter("gen", 1)
	require.NoError(t, err)
	require.Len(t, verses, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{verses[0].Number, verses[1].Number, verses[2].Number})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bible_zh.json")
	require.NoError(t, os.WriteFile(path, []byte(`["創1:1 起初","創1:2 地是空虛混沌"]`), 0644))

	store, err := LoadFile(i18n.LocaleZh, path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.ChapterCount())

	_, err = LoadFile(i18n.LocaleZh, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"array"}`), 0644))
	_, err = LoadFile(i18n.LocaleZh, bad)
	assert.Error(t, err)
}

func TestSet_Chapter(t *testing.T) {
	set := Set{
		i18n.LocaleZh: Parse(i18n.LocaleZh, []string{"創1:1 起初"}),
	}

	verses, err := set.Chapter(i18n.LocaleZh, "gen", 1)
	require.NoError(t, err)
	assert.Len(t, verses, 1)

	_, err = set.Chapter(i18n.LocaleEn, "gen", 1)
	assert.ErrorIs(t, err, ErrChapterMissing)
}
