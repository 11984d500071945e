// internal/handlers/scan/scan_handler.go
package scan

import (
	"errors"
	"net/http"

	xerrors "notifyme-service/internal/pkg/errors"
	"notifyme-service/internal/pkg/response"
	"notifyme-service/internal/service/scanner"

	"github.com/gin-gonic/gin"
)

// ScanHandler lets an external scheduler trigger an expiry scan cycle on
// demand, as an alternative to the internal timer.
type ScanHandler struct {
	scanner *scanner.Scanner
}

func NewScanHandler(s *scanner.Scanner) *ScanHandler {
	return &ScanHandler{scanner: s}
}

func (h *ScanHandler) RunScan(c *gin.Context) {
	if err := h.scanner.ScanOnce(c.Request.Context()); err != nil {
		if errors.Is(err, xerrors.ErrStoreUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "store unavailable, scan aborted", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "scan failed", err)
		return
	}

	response.Success(c, http.StatusOK, "expiry scan complete", nil)
}
