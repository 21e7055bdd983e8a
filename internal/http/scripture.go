package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/bible"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/scripture"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// ChapterTextResponse is one chapter of scripture in the display locale.
type ChapterTextResponse struct {
	Book     string            `json:"book"`
	BookName string            `json:"book_name"`
	Chapter  int               `json:"chapter"`
	Locale   string            `json:"locale"`
	Verses   []scripture.Verse `json:"verses"`
}

type ScriptureController struct {
	scriptures    scripture.Set
	settingsStore *settingsstore.SettingsStore
}

func NewScriptureController(scriptures scripture.Set, settingsStore *settingsstore.SettingsStore) *ScriptureController {
	return &ScriptureController{
		scriptures:    scriptures,
		settingsStore: settingsStore,
	}
}

// Chapter returns one chapter's verses in the display locale. An optional
// ?locale= query overrides the stored setting for this response only.
func (ctrl *ScriptureController) Chapter(c *gin.Context) {
	book := bible.Resolve(c.Param("book"))
	if book == nil {
		respondBadRequest(c, "unknown book")
		return
	}
	chapter, ok := parseIntParam(c, "chapter")
	if !ok {
		return
	}
	if !book.HasChapter(chapter) {
		respondBadRequest(c, "chapter out of range")
		return
	}

	locale := ctrl.settingsStore.GetLocale()
	if q := c.Query("locale"); q != "" {
		locale = i18n.Parse(q)
	}

	verses, err := ctrl.scriptures.Chapter(locale, book.ID, chapter)
	if err != nil {
		if errors.Is(err, scripture.ErrChapterMissing) {
			respondNotFound(c, i18n.T(locale)["scripture.missing"])
			return
		}
		respondInternalError(c, err, "load scripture")
		return
	}

	name := book.NameZh
	if locale == i18n.LocaleEn {
		name = book.NameEn
	}

	c.JSON(http.StatusOK, ChapterTextResponse{
		Book:     book.ID,
		BookName: name,
		Chapter:  chapter,
		Locale:   string(locale),
		Verses:   verses,
	})
}
