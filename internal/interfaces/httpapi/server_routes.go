package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweek)
	mux.HandleFunc("GET /v1/gameweeks/next", handler.GetNextGameweek)
	mux.HandleFunc("GET /v1/rooms", handler.ListPublicRooms)
	mux.HandleFunc("GET /v1/rooms/by-code/{code}", handler.GetRoomByCode)
	mux.HandleFunc("GET /v1/rooms/{roomID}", handler.GetRoom)
	mux.HandleFunc("GET /v1/rooms/{roomID}/sharing", handler.GetRoomSharingInfo)
	mux.HandleFunc("GET /v1/rooms/{roomID}/standings", handler.GetSeasonStandings)
	mux.HandleFunc("GET /v1/rooms/{roomID}/standings/{gameweekID}", handler.GetGameweekStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedRoomRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
}

func registerAuthorizedRoomRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/rooms", RequireAuth(verifier, http.HandlerFunc(handler.CreateRoom)))
	mux.Handle("POST /v1/rooms/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinRoom)))
	mux.Handle("GET /v1/rooms/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyRooms)))
	mux.Handle("DELETE /v1/rooms/{roomID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteRoom)))
	mux.Handle("POST /v1/rooms/{roomID}/code", RequireAuth(verifier, http.HandlerFunc(handler.RegenerateRoomCode)))
	mux.Handle("POST /v1/rooms/default", RequireAuth(verifier, http.HandlerFunc(handler.EnsureDefaultRoom)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.SaveTeam)))
	mux.Handle("GET /v1/rooms/{roomID}/gameweeks/{gameweekID}/team", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("PUT /v1/teams/captains", RequireAuth(verifier, http.HandlerFunc(handler.UpdateCaptains)))
	mux.Handle("POST /v1/teams/substitutions", RequireAuth(verifier, http.HandlerFunc(handler.ApplySubstitution)))
}

func registerScoringRoutes(mux *http.ServeMux, handler *Handler, scoringToken string) {
	mux.Handle("POST /v1/scoring/scores", RequireScoringToken(scoringToken, http.HandlerFunc(handler.IngestScores)))
	mux.Handle("POST /v1/scoring/recompute", RequireScoringToken(scoringToken, http.HandlerFunc(handler.RecomputeAllStandings)))
	mux.Handle("POST /v1/scoring/rooms/{roomID}/gameweeks/{gameweekID}/recompute", RequireScoringToken(scoringToken, http.HandlerFunc(handler.RecomputeStandings)))
	mux.Handle("POST /v1/scoring/gameweeks", RequireScoringToken(scoringToken, http.HandlerFunc(handler.CreateGameweek)))
	mux.Handle("POST /v1/scoring/gameweeks/bootstrap", RequireScoringToken(scoringToken, http.HandlerFunc(handler.BootstrapGameweek)))
	mux.Handle("POST /v1/scoring/gameweeks/{gameweekID}/activate", RequireScoringToken(scoringToken, http.HandlerFunc(handler.ActivateGameweek)))
}
