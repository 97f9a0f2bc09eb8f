package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/hockeytracker/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeNameRequired         = "NAME_REQUIRED"
	CodePlayerNumberRequired = "PLAYER_NUMBER_REQUIRED"
	CodeScorerNumberRequired = "SCORER_NUMBER_REQUIRED"
	CodeNoPlayers            = "NO_PLAYERS"
	CodeInvalidStat          = "INVALID_STAT"
	CodeInvalidSide          = "INVALID_SIDE"
	CodeInvalidPenaltyType   = "INVALID_PENALTY_TYPE"
	CodeNotMinorPenalty      = "NOT_MINOR_PENALTY"
	CodePenaltyServed        = "PENALTY_SERVED"
	CodeTeamNotFound         = "TEAM_NOT_FOUND"
	CodeMatchNotFound        = "MATCH_NOT_FOUND"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodePenaltyNotFound      = "PENALTY_NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// mapping is checked in order; the first sentinel that matches wins
var mapping = []struct {
	target error
	status int
	code   string
	msg    string
}{
	{model.ErrNameRequired, http.StatusBadRequest, CodeNameRequired, "Name is required"},
	{model.ErrPlayerNumberRequired, http.StatusBadRequest, CodePlayerNumberRequired, "Player number is required"},
	{model.ErrScorerNumberRequired, http.StatusBadRequest, CodeScorerNumberRequired, "Scorer number is required"},
	{model.ErrNoPlayers, http.StatusBadRequest, CodeNoPlayers, "A team needs at least one player"},
	{model.ErrInvalidStat, http.StatusBadRequest, CodeInvalidStat, "Stat is not valid for this player"},
	{model.ErrInvalidSide, http.StatusBadRequest, CodeInvalidSide, "Side must be US or THEM"},
	{model.ErrInvalidPenaltyType, http.StatusBadRequest, CodeInvalidPenaltyType, "Unknown penalty type"},
	{model.ErrNotMinorPenalty, http.StatusConflict, CodeNotMinorPenalty, "Only minor penalties can be released early"},
	{model.ErrPenaltyServed, http.StatusConflict, CodePenaltyServed, "Penalty has already been served"},
	{model.ErrTeamNotFound, http.StatusNotFound, CodeTeamNotFound, "Team not found"},
	{model.ErrMatchNotFound, http.StatusNotFound, CodeMatchNotFound, "Match not found"},
	{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound, "Player not found"},
	{model.ErrPenaltyNotFound, http.StatusNotFound, CodePenaltyNotFound, "Penalty not found"},
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	for _, m := range mapping {
		if errors.Is(err, m.target) {
			return &httpError{m.status, APIError{m.code, m.msg}}
		}
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// WritePanic answers a request whose handler panicked with a JSON 500
func WritePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	WriteError(w, NewInternalError())
}
