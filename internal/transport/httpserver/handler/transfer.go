package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	transferdomain "fitclub-go/internal/domain/transfer"
)

const maxImportSize = 5 << 20

var (
	errNoImportFile  = errors.New("no file selected")
	errNotCSVFile    = errors.New("please upload a CSV file")
	errImportTooLong = errors.New("import file is too large")
)

type importRowError struct {
	Line    int    `json:"line"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type importResponse struct {
	ImportID string           `json:"import_id"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []importRowError `json:"errors"`
}

func (h *Handlers) ImportMembersForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns": transferdomain.MemberImportColumns,
		"note":    "the first row is a header and is skipped",
	})
}

func (h *Handlers) ImportMembers(w http.ResponseWriter, r *http.Request) {
	body, err := readImportFile(r)
	if err != nil {
		h.log.BusinessError("transfer.import: rejected upload", err)
		writeError(w, http.StatusBadRequest, "invalid_file", err.Error())
		return
	}

	report, err := h.Transfer.ImportMembers(r.Context(), bytes.NewReader(body))
	if err != nil {
		h.writeServiceError(w, r, "import members", err)
		return
	}
	h.metrics.ObserveImport(report.Imported, report.Failed)

	rows := make([]importRowError, 0, len(report.Errors))
	for _, rowErr := range report.Errors {
		rows = append(rows, importRowError{Line: rowErr.Line, Email: rowErr.Email, Message: rowErr.Message})
	}
	writeJSON(w, http.StatusOK, importResponse{
		ImportID: report.ID,
		Imported: report.Imported,
		Failed:   report.Failed,
		Errors:   rows,
	})
}

func (h *Handlers) ExportMembers(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	count, err := h.Transfer.ExportMembers(r.Context(), &buf)
	if err != nil {
		h.writeServiceError(w, r, "export members", err)
		return
	}
	h.log.Info("transfer.export: members", "rows", count)
	writeCSV(w, transferdomain.MembersFilename(h.now()), buf.Bytes())
}

func (h *Handlers) ExportSessions(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	count, err := h.Transfer.ExportSessions(r.Context(), &buf)
	if err != nil {
		h.writeServiceError(w, r, "export sessions", err)
		return
	}
	h.log.Info("transfer.export: sessions", "rows", count)
	writeCSV(w, transferdomain.SessionsFilename(h.now()), buf.Bytes())
}

// readImportFile accepts a multipart upload in the "file" field or a raw CSV body.
func readImportFile(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return readLimited(r.Body)
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, errNoImportFile
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errNoImportFile
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, errNoImportFile
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return nil, errNotCSVFile
	}
	return readLimited(file)
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxImportSize {
		return nil, errImportTooLong
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errNoImportFile
	}
	return body, nil
}

func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
