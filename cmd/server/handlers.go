package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"sectorscreen/internal/export"
	"sectorscreen/internal/fundata"
	"sectorscreen/internal/screen"
	"sectorscreen/internal/upload"
)

type screenRequest struct {
	Industries []screen.Industry `json:"industries"`
	Mode       string            `json:"mode"`
	Filter     screen.Filter     `json:"filter"`
}

type tableResponse struct {
	Rows  screen.Table `json:"rows"`
	Count int          `json:"count"`
}

type industriesResponse struct {
	Industries map[string]string `json:"industries"`
}

func writeSectors(w http.ResponseWriter) {
	writeJSON(w, struct {
		Sectors []screen.Sector `json:"sectors"`
	}{Sectors: screen.Sectors()})
}

// writeIndustries lists a sector's industries. Provider failure
// degrades to an empty mapping; that is the caller-visible "no data"
// state, not a server error.
func writeIndustries(w http.ResponseWriter, r *http.Request, src fundata.Source, log logrus.FieldLogger) {
	sector := strings.TrimSpace(r.URL.Query().Get("sector"))
	if sector == "" {
		http.Error(w, "missing sector query param", http.StatusBadRequest)
		return
	}
	industries, err := src.ListIndustries(r.Context(), sector)
	if err != nil {
		if log != nil {
			log.WithError(err).WithField("sector", sector).Warn("industry listing failed")
		}
		industries = map[string]string{}
	}
	writeJSON(w, industriesResponse{Industries: industries})
}

func decodeScreenRequest(w http.ResponseWriter, r *http.Request) (screenRequest, fundata.Mode, bool) {
	var req screenRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return req, "", false
	}
	if len(req.Industries) == 0 {
		http.Error(w, "industries cannot be empty", http.StatusBadRequest)
		return req, "", false
	}
	mode, err := fundata.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, "", false
	}
	return req, mode, true
}

func handleScreen(w http.ResponseWriter, r *http.Request, e *screen.Enricher) {
	req, mode, ok := decodeScreenRequest(w, r)
	if !ok {
		return
	}
	t := e.Screen(r.Context(), req.Industries, mode, req.Filter)
	writeJSON(w, tableResponse{Rows: t, Count: len(t)})
}

// handleScreenExport runs the same pipeline pass as handleScreen and
// serializes the resulting snapshot as a downloadable workbook.
func handleScreenExport(w http.ResponseWriter, r *http.Request, e *screen.Enricher) {
	req, mode, ok := decodeScreenRequest(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "plain"
	}
	filename := r.URL.Query().Get("filename")

	t := e.Screen(r.Context(), req.Industries, mode, req.Filter)
	writeWorkbook(w, t, format, filename)
}

func writeWorkbook(w http.ResponseWriter, t screen.Table, format, filename string) {
	var (
		buf interface{ Bytes() []byte }
		err error
	)
	switch format {
	case "styled":
		if filename == "" {
			filename = "industry_companies_styled.xlsx"
		}
		buf, err = export.Styled(t, export.DefaultSheet)
	case "plain":
		if filename == "" {
			filename = "industry_companies_plain.xlsx"
		}
		buf, err = export.Plain(t, export.DefaultSheet)
	default:
		http.Error(w, fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleUpload ingests an uploaded ticker workbook, enriches the
// symbols and append-merges them onto the optional existing table sent
// alongside. Existing rows are returned untouched.
func handleUpload(w http.ResponseWriter, r *http.Request, e *screen.Enricher) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	symbols, err := upload.ReadSymbols(file)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, upload.ErrNoSymbols) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	var existing screen.Table
	if raw := r.FormValue("existing"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			http.Error(w, "invalid existing table JSON", http.StatusBadRequest)
			return
		}
	}

	enriched := e.Enrich(r.Context(), screen.UploadRequests(symbols))
	merged := screen.SortByMarketCap(screen.AppendMerge(existing, enriched))
	writeJSON(w, tableResponse{Rows: merged, Count: len(merged)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
