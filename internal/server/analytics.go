package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"replay-coach/internal/constants"
	"replay-coach/internal/domain"
	"replay-coach/internal/service"
)

// AnalyticsServer is the JSON surface consumed by the UI layer. Every
// response is a plain data structure from the domain package; nothing
// here feeds back into the engine.
type AnalyticsServer struct {
	replaySvc    *service.ReplayService
	analyticsSvc *service.AnalyticsService
	benchmarkSvc *service.BenchmarkService
}

func NewAnalyticsServer(replaySvc *service.ReplayService, analyticsSvc *service.AnalyticsService, benchmarkSvc *service.BenchmarkService) *AnalyticsServer {
	return &AnalyticsServer{replaySvc: replaySvc, analyticsSvc: analyticsSvc, benchmarkSvc: benchmarkSvc}
}

func (s *AnalyticsServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/{userID}/replays", s.uploadReplay)
	mux.HandleFunc("DELETE /api/users/{userID}/replays/{replayID}", s.deleteReplay)
	mux.HandleFunc("GET /api/users/{userID}/index", s.getIndex)
	mux.HandleFunc("POST /api/users/{userID}/index/rebuild", s.rebuildIndex)
	mux.HandleFunc("GET /api/users/{userID}/trends", s.getTrends)
	mux.HandleFunc("GET /api/users/{userID}/nemesis", s.getNemesis)
	mux.HandleFunc("GET /api/users/{userID}/matchups", s.getMatchups)
	mux.HandleFunc("GET /api/users/{userID}/players", s.getPlayerStats)
	mux.HandleFunc("GET /api/users/{userID}/replays/{replayID}/supply-timeline", s.getSupplyTimeline)
	mux.HandleFunc("POST /api/users/{userID}/replays/{replayID}/compare", s.compareReplay)
	mux.HandleFunc("POST /api/reference-builds", s.saveReferenceBuild)
	mux.HandleFunc("GET /api/reference-builds", s.listReferenceBuilds)
	mux.HandleFunc("GET /api/reference-builds/{buildID}", s.getReferenceBuild)
	mux.HandleFunc("DELETE /api/reference-builds/{buildID}", s.deleteReferenceBuild)
}

func (s *AnalyticsServer) uploadReplay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing replay file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read replay file")
		return
	}

	replay, err := s.replaySvc.Upload(r.Context(), r.PathValue("userID"), header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, replay)
}

func (s *AnalyticsServer) deleteReplay(w http.ResponseWriter, r *http.Request) {
	err := s.replaySvc.Delete(r.Context(), r.PathValue("userID"), r.PathValue("replayID"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "replay not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *AnalyticsServer) getIndex(w http.ResponseWriter, r *http.Request) {
	index, err := s.replaySvc.GetIndex(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, index)
}

func (s *AnalyticsServer) rebuildIndex(w http.ResponseWriter, r *http.Request) {
	index, err := s.replaySvc.RebuildIndex(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, index)
}

func (s *AnalyticsServer) getTrends(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r.URL.Query().Get("period"))
	if !ok {
		writeError(w, http.StatusBadRequest, "period must be one of daily, weekly, monthly, all")
		return
	}

	series, err := s.analyticsSvc.Trends(r.Context(), r.PathValue("userID"), period, r.URL.Query().Get("matchup"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *AnalyticsServer) getNemesis(w http.ResponseWriter, r *http.Request) {
	nemesis, err := s.analyticsSvc.Nemesis(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// No qualifying opponent is a valid answer, not an error.
	writeJSON(w, http.StatusOK, map[string]*domain.NemesisSummary{"nemesis": nemesis})
}

func (s *AnalyticsServer) getMatchups(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsSvc.Matchups(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *AnalyticsServer) getPlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsSvc.PlayerStats(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *AnalyticsServer) getSupplyTimeline(w http.ResponseWriter, r *http.Request) {
	interval := constants.DefaultTimelineInterval
	if v := r.URL.Query().Get("interval"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "interval must be a positive integer")
			return
		}
		interval = n
	}

	points, err := s.replaySvc.SupplyTimeline(r.Context(), r.PathValue("userID"), r.PathValue("replayID"), interval)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "replay not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *AnalyticsServer) compareReplay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReferenceBuildID string `json:"reference_build_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReferenceBuildID == "" {
		writeError(w, http.StatusBadRequest, "reference_build_id is required")
		return
	}

	comparison, err := s.analyticsSvc.Compare(r.Context(), r.PathValue("userID"), r.PathValue("replayID"), req.ReferenceBuildID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "replay or reference build not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (s *AnalyticsServer) saveReferenceBuild(w http.ResponseWriter, r *http.Request) {
	var build domain.ReferenceBuild
	if err := json.NewDecoder(r.Body).Decode(&build); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reference build payload")
		return
	}
	saved, err := s.benchmarkSvc.Save(r.Context(), &build)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *AnalyticsServer) listReferenceBuilds(w http.ResponseWriter, r *http.Request) {
	builds, err := s.benchmarkSvc.List(r.Context(), r.URL.Query().Get("matchup"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, builds)
}

func (s *AnalyticsServer) getReferenceBuild(w http.ResponseWriter, r *http.Request) {
	build, err := s.benchmarkSvc.Get(r.Context(), r.PathValue("buildID"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "reference build not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, build)
}

func (s *AnalyticsServer) deleteReferenceBuild(w http.ResponseWriter, r *http.Request) {
	if err := s.benchmarkSvc.Delete(r.Context(), r.PathValue("buildID")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parsePeriod(v string) (domain.Period, bool) {
	switch domain.Period(v) {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly, domain.PeriodAllTime:
		return domain.Period(v), true
	case "":
		return domain.PeriodWeekly, true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
