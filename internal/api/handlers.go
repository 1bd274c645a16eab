package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pable/go-ipl-stats/internal/aggregator"
	"github.com/pable/go-ipl-stats/internal/logging"
	"github.com/pable/go-ipl-stats/internal/model"
)

// Query kinds, used as metric labels.
const (
	kindSeasons    = "seasons"
	kindTeams      = "teams"
	kindHeadToHead = "head_to_head"
	kindTeamRecord = "team_record"
	kindBatting    = "batting"
	kindBowling    = "bowling"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type seasonsResponse struct {
	Seasons []string `json:"seasons"`
}

type teamsResponse struct {
	Teams []string `json:"teams"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Matches    int    `json:"matches"`
	Deliveries int    `json:"deliveries"`
	Regulation int    `json:"regulation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.ds.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Matches:    st.Matches,
		Deliveries: st.Deliveries,
		Regulation: st.Regulation,
	})
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordQuery(kindSeasons)
	writeJSON(w, http.StatusOK, seasonsResponse{Seasons: nonNil(aggregator.Seasons(s.ds.Matches()))})
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordQuery(kindTeams)
	writeJSON(w, http.StatusOK, teamsResponse{Teams: nonNil(aggregator.Teams(s.ds.Matches()))})
}

func (s *Server) handleHeadToHead(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "team1", "team2")
	if !ok {
		return
	}
	for _, team := range params {
		if model.IsReservedTeamName(team) {
			writeError(w, http.StatusBadRequest, "invalid_parameter",
				fmt.Errorf("%w: %q", model.ErrReservedTeamName, team))
			return
		}
	}
	s.metrics.RecordQuery(kindHeadToHead)
	writeJSON(w, http.StatusOK, aggregator.HeadToHead(s.ds.Matches(), params[0], params[1]))
}

func (s *Server) handleTeamRecord(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "team")
	if !ok {
		return
	}
	s.metrics.RecordQuery(kindTeamRecord)
	writeJSON(w, http.StatusOK, aggregator.TeamRecordFor(s.ds.Matches(), params[0]))
}

func (s *Server) handleBattingRecord(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "batsman")
	if !ok {
		return
	}
	batsman := params[0]
	rep := aggregator.BattingReportFor(r.Context(), s.ds, batsman)
	s.metrics.RecordQuery(kindBatting)
	if rep.All == nil {
		s.metrics.RecordMissingEntity(kindBatting)
		logging.FromContext(r.Context()).Debug("no batting deliveries", "batsman", batsman)
	}
	writeJSON(w, http.StatusOK, map[string]aggregator.BattingReport{batsman: rep})
}

func (s *Server) handleBowlingRecord(w http.ResponseWriter, r *http.Request) {
	params, ok := requireParams(w, r, "bowler")
	if !ok {
		return
	}
	bowler := params[0]
	rep := aggregator.BowlingReportFor(r.Context(), s.ds, bowler)
	s.metrics.RecordQuery(kindBowling)
	if rep.All == nil {
		s.metrics.RecordMissingEntity(kindBowling)
		logging.FromContext(r.Context()).Debug("no bowling deliveries", "bowler", bowler)
	}
	writeJSON(w, http.StatusOK, map[string]aggregator.BowlingReport{bowler: rep})
}

// requireParams returns the named query parameters in order, or writes a
// 400 naming the first missing one.
func requireParams(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	q := r.URL.Query()
	out := make([]string, len(names))
	for i, name := range names {
		v := q.Get(name)
		if strings.TrimSpace(v) == "" {
			writeError(w, http.StatusBadRequest, "missing_parameter",
				fmt.Errorf("missing required query parameter %q", name))
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Code: "encode_failed", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
