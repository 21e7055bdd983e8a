package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibleplan/tracker/internal/audit"
	"github.com/bibleplan/tracker/internal/exporters"
	"github.com/bibleplan/tracker/internal/i18n"
	"github.com/bibleplan/tracker/internal/importers"
	"github.com/bibleplan/tracker/internal/progress"
	"github.com/bibleplan/tracker/internal/settingsstore"
)

// maxImportSize caps uploaded progress blobs. The full canon is under
// 32KiB of keys, so anything near the cap is garbage.
const maxImportSize = 1 << 20

type ImportExportController struct {
	store         ProgressLoader
	exporter      *exporters.ProgressExporter
	importer      *importers.Pipeline
	settingsStore *settingsstore.SettingsStore
	auditor       *audit.Service
}

func NewImportExportController(
	store ProgressLoader,
	exporter *exporters.ProgressExporter,
	importer *importers.Pipeline,
	settingsStore *settingsstore.SettingsStore,
	auditor *audit.Service,
) *ImportExportController {
	return &ImportExportController{
		store:         store,
		exporter:      exporter,
		importer:      importer,
		settingsStore: settingsStore,
		auditor:       auditor,
	}
}

// Export streams the current progress as a dated JSON attachment.
func (ctrl *ImportExportController) Export(c *gin.Context) {
	snap, err := ctrl.store.Load()
	if err != nil {
		ctrl.auditor.LogExport("download", err)
		respondInternalError(c, err, "load progress")
		return
	}

	blob, err := ctrl.exporter.Export(snap)
	if err != nil {
		ctrl.auditor.LogExport("download", err)
		respondInternalError(c, err, "export progress")
		return
	}

	ctrl.auditor.LogExport(fmt.Sprintf("download %s (%d chapters)", blob.Filename, snap.Count()), nil)
	c.Header("Content-Disposition", `attachment; filename="`+blob.Filename+`"`)
	c.Data(http.StatusOK, "application/json", blob.Data)
}

// importBody reads the progress blob from either a multipart "file" field
// or the raw request body.
func importBody(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
}

type importResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Import replaces all stored progress with an uploaded blob. A malformed
// blob is rejected before anything is written.
func (ctrl *ImportExportController) Import(c *gin.Context) {
	locale := ctrl.settingsStore.GetLocale()

	data, err := importBody(c)
	if err != nil {
		ctrl.auditor.LogImport("upload", 0, 0, err)
		respondBadRequest(c, "cannot read upload")
		return
	}

	_, res, err := ctrl.importer.Import(data)
	if err != nil {
		ctrl.auditor.LogImport("upload", 0, 0, err)
		if errors.Is(err, progress.ErrMalformed) {
			respondBadRequest(c, i18n.T(locale)["import.error"])
			return
		}
		respondInternalError(c, err, "import progress")
		return
	}

	ctrl.auditor.LogImport("upload", res.Imported, res.Skipped, nil)
	c.JSON(http.StatusOK, importResponse{
		Message:  i18n.T(locale)["import.success"],
		Imported: res.Imported,
		Skipped:  res.Skipped,
	})
}
