package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "travelog/pkg/errors"
	httputil "travelog/pkg/http"
	"travelog/pkg/logger"
	"travelog/pkg/model"
)

const ClaimsKey contextKey = "token_claims"

// TokenVerifier checks a bearer token's signature and expiry and returns the
// identity it carries.
type TokenVerifier interface {
	Verify(tokenString string) (*model.TokenClaims, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header. Verified claims are stored on the request context.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := verifyBearer(verifier, r)
			if err != nil {
				log.Warn("Rejected unauthenticated request",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireAdmin verifies the bearer token independently of RequireAuth and
// rejects non-admin callers with 403.
func RequireAdmin(verifier TokenVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := verifyBearer(verifier, r)
			if err != nil {
				_ = httputil.WriteError(w, err)
				return
			}

			if claims.Role != model.RoleAdmin {
				log.Warn("Rejected non-admin request",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"username", claims.Username,
					"role", claims.Role,
				)
				_ = httputil.WriteError(w, apperrors.Forbidden("Admin role required"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// Claims returns the verified token claims stored by the auth gates, or nil.
func Claims(ctx context.Context) *model.TokenClaims {
	if c, ok := ctx.Value(ClaimsKey).(*model.TokenClaims); ok {
		return c
	}
	return nil
}

func verifyBearer(verifier TokenVerifier, r *http.Request) (*model.TokenClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.Unauthorized("Missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, apperrors.Unauthorized("Authorization header must be of the form 'Bearer <token>'")
	}

	claims, err := verifier.Verify(parts[1])
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
