package httpapi

import "net/http"

// UserIDHeader carries the opaque authenticated user id. Session
// issuance and token verification live in the auth layer in front of
// this service; by the time a request lands here the header is trusted.
const UserIDHeader = "X-User-ID"

type authedHandler func(w http.ResponseWriter, r *http.Request, userID string)

func (h *Handler) requireUser(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r, userID)
	}
}
