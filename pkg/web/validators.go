package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParseValidateGt reads an integer query parameter that must be strictly
// greater than min. Used for the limit and version parameters.
func ParseValidateGt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min int64) (int32, bool) {
	return parseQueryInt(r, w, logger, key, func(v int64) bool { return v > min })
}

// ParseValidateGte reads an integer query parameter that must be at least
// min. Used for the offset parameter.
func ParseValidateGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, min int64) (int32, bool) {
	return parseQueryInt(r, w, logger, key, func(v int64) bool { return v >= min })
}

// parseQueryInt rejects the request with a 400 when the parameter is absent,
// not an int32 or outside the accepted range.
func parseQueryInt(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, accept func(int64) bool) (int32, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || !accept(v) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return 0, false
	}
	return int32(v), true
}
