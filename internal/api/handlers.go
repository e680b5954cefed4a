package api

import (
	"errors"
	"net/http"

	"github.com/MrJJimenez/jobboard/internal/query"
	"github.com/rs/zerolog/hlog"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filter, page, err := query.DecodeValues(r.URL.Query())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.source.Fetch(r.Context(), filter, page)
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			// Client went away; nobody is left to read a response.
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("list jobs")
		respondError(w, r, http.StatusInternalServerError, "failed to load jobs")
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, query.FilterOptions())
}
