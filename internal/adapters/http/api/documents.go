package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tables"
)

// positionCollege is one college in a position group listing.
type positionCollege struct {
	College    string                `json:"college"`
	Slug       string                `json:"slug"`
	Conference string                `json:"conference"`
	Players    []model.PlayerSummary `json:"players"`
}

type positionsResponse struct {
	Group    string            `json:"group"`
	Colleges []positionCollege `json:"colleges"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := s.reader.ReadHomeSummary(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "api.home", err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

func (s *Server) handleCollege(w http.ResponseWriter, r *http.Request) {
	agg, err := s.reader.ReadAggregate(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeStoreError(w, r, "api.college", err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	group, ok := matchGroup(chi.URLParam(r, "group"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	aggs, err := s.reader.ListAggregates(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "api.positions", err)
		return
	}

	out := positionsResponse{Group: group, Colleges: []positionCollege{}}
	for _, agg := range aggs {
		var players []model.PlayerSummary
		for _, p := range agg.Players {
			if s.tables.PositionGroup(p.Position) == group {
				players = append(players, p)
			}
		}
		if len(players) == 0 {
			continue
		}
		out.Colleges = append(out.Colleges, positionCollege{
			College:    agg.College,
			Slug:       agg.Slug,
			Conference: agg.Conference,
			Players:    players,
		})
	}
	sort.Slice(out.Colleges, func(i, j int) bool {
		a, b := out.Colleges[i], out.Colleges[j]
		if a.College != b.College {
			return a.College < b.College
		}
		return a.Slug < b.Slug
	})
	writeJSON(w, http.StatusOK, out)
}

// matchGroup resolves a position group name case-insensitively.
func matchGroup(name string) (string, bool) {
	for _, g := range tables.PositionGroups() {
		if strings.EqualFold(g, name) {
			return g, true
		}
	}
	return "", false
}
