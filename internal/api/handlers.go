package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/analysis"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/derive"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/export"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/httputil"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/report"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/track"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/videosync"
)

// runSummary is the JSON shape returned for a run.
type runSummary struct {
	RunID       string  `json:"run_id"`
	CreatedAt   string  `json:"created_at"`
	Readings    int     `json:"readings"`
	DroppedRows int     `json:"dropped_rows"`
	Flags       int     `json:"flags"`
	Segments    int     `json:"segments"`
	GapM        float64 `json:"gap_m"`
	HasFrames   bool    `json:"has_frames"`
}

func summarizeRun(rs runState) runSummary {
	res := rs.result
	return runSummary{
		RunID:       res.RunID,
		CreatedAt:   res.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Readings:    len(res.Derived),
		DroppedRows: res.DroppedRows,
		Flags:       len(res.Flags),
		Segments:    len(res.Segments),
		GapM:        res.GapM,
		HasFrames:   rs.resolver != nil,
	}
}

// writeRunError maps engine errors onto HTTP statuses: schema and
// configuration problems are the client's to fix (400), a dataset too
// sparse to analyze is 422, and a query outside coverage is 404.
func writeRunError(w http.ResponseWriter, err error) {
	var schemaErr *track.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "schema validation failed",
			"problems": schemaErr.Problems,
		})
	case errors.Is(err, derive.ErrInsufficientData):
		httputil.UnprocessableEntity(w, err.Error())
	case errors.Is(err, videosync.ErrNotFound):
		httputil.NotFound(w, err.Error())
	default:
		httputil.BadRequest(w, err.Error())
	}
}

// handleAnalyze ingests a CSV dataset from the request body, runs the
// full pipeline, and registers the result. Run options may be
// overridden per request via query parameters; thresholds come from
// the server defaults.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.runOptions(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	table, err := track.ReadCSV(body)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	result, err := analysis.Run(table, opts)
	if err != nil {
		writeRunError(w, err)
		return
	}

	rs := &runState{result: result}
	s.putRun(rs)
	httputil.WriteJSON(w, http.StatusCreated, summarizeRun(*rs))
}

// runOptions builds analysis options for one request from the server
// defaults plus query-parameter overrides.
func (s *Server) runOptions(r *http.Request) (analysis.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	if v := q.Get("missing_value_policy"); v != "" {
		opts.Derive.Policy = derive.MissingValuePolicy(v)
	}
	if v := q.Get("filter"); v != "" {
		opts.Derive.Filter = derive.FilterKind(v)
	}
	if v := q.Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid window %q", v)
		}
		opts.Derive.Window = n
	}
	if v := q.Get("cutoff"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid cutoff %q", v)
		}
		opts.Derive.Cutoff = f
	}
	if v := q.Get("max_gap_m"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid max_gap_m %q", v)
		}
		opts.MaxGapM = f
	}
	return opts, opts.Validate()
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	summaries := make([]runSummary, 0, len(s.runs))
	for _, rs := range s.runs {
		summaries = append(summaries, summarizeRun(*rs))
	}
	s.mu.RUnlock()
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// run fetches a snapshot of the run named in the URL, writing a 404
// when absent.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (runState, bool) {
	id := chi.URLParam(r, "runID")
	rs, ok := s.getRun(id)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("unknown run %q", id))
	}
	return rs, ok
}

func (s *Server) handleRunSummary(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summarizeRun(rs))
}

func (s *Server) handleDerived(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	res := rs.result
	if r.URL.Query().Get("format") == "csv" {
		httputil.SetDownloadHeaders(w, "text/csv", fmt.Sprintf("derived_%s.csv", res.RunID))
		if err := export.WriteDerivedCSV(w, res.Readings, res.Derived); err != nil {
			httputil.InternalServerError(w, err.Error())
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteDerivedJSON(w, res.Readings, res.Derived); err != nil {
		httputil.InternalServerError(w, err.Error())
	}
}

func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	res := rs.result
	if r.URL.Query().Get("format") == "csv" {
		httputil.SetDownloadHeaders(w, "text/csv", fmt.Sprintf("flags_%s.csv", res.RunID))
		if err := export.WriteFlagsCSV(w, res.Flags); err != nil {
			httputil.InternalServerError(w, err.Error())
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteFlagsJSON(w, res.Flags); err != nil {
		httputil.InternalServerError(w, err.Error())
	}
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rs.result.Segments)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report.Summarize(rs.result.Derived, rs.result.Flags))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderHTML(w, rs.result); err != nil {
		httputil.InternalServerError(w, err.Error())
	}
}

func (s *Server) handleWearProfile(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := report.RenderWearProfilePNG(w, rs.result.Readings); err != nil {
		httputil.InternalServerError(w, err.Error())
	}
}

// handleUploadFrames accepts the frame index CSV from the video
// collaborator and builds the resolver for the run. Uploading again
// replaces the previous index.
func (s *Server) handleUploadFrames(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.run(w, r)
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	index, err := videosync.ReadCSV(body)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	tolerance := derive.MedianInterval(rs.result.Derived)
	resolver, err := videosync.NewResolver(index, rs.result.Derived, s.cfg.ResolveWindowM, tolerance)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	s.setResolver(rs.result.RunID, resolver)
	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"run_id": rs.result.RunID,
		"frames": len(index),
	})
}

// resolver fetches the run's resolver, writing a 400 when no frame
// index has been uploaded yet.
func (s *Server) resolverFor(w http.ResponseWriter, r *http.Request) (*videosync.Resolver, bool) {
	rs, ok := s.run(w, r)
	if !ok {
		return nil, false
	}
	if rs.resolver == nil {
		httputil.BadRequest(w, "no frame index uploaded for this run")
		return nil, false
	}
	return rs.resolver, true
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	resolver, ok := s.resolverFor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var view *videosync.ResolvedView
	var err error
	switch {
	case q.Get("chainage") != "":
		var chainage float64
		chainage, err = strconv.ParseFloat(q.Get("chainage"), 64)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid chainage %q", q.Get("chainage")))
			return
		}
		view, err = resolver.ResolveChainage(chainage)
	case q.Get("timestamp") != "":
		var ts float64
		ts, err = strconv.ParseFloat(q.Get("timestamp"), 64)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid timestamp %q", q.Get("timestamp")))
			return
		}
		view, err = resolver.ResolveTimestamp(ts)
	default:
		httputil.BadRequest(w, "query requires chainage or timestamp")
		return
	}
	if err != nil {
		writeRunError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	resolver, ok := s.resolverFor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	current, err := strconv.ParseFloat(q.Get("chainage"), 64)
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid chainage %q", q.Get("chainage")))
		return
	}
	step := 0.0
	if v := q.Get("step_m"); v != "" {
		step, err = strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid step_m %q", v))
			return
		}
	}

	frame, more := resolver.Advance(current, step)
	if !more {
		// End of track stops auto-advance; it is not an error.
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"done": true})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"done": false, "frame": frame})
}
