package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	authUC "github.com/taskdeck/backend/usecase/auth"
)

const ownerEmailKey = "owner_email"

// Session guards task routes: it resolves the session cookie (or a bearer
// session token for non-browser clients) and attaches the owner email to
// the request. Unauthenticated requests are rejected with 401.
func Session(auth *authUC.UseCase, cookieName string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := Token(ctx, cookieName)
			if token == "" {
				reject(ctx)
				return
			}

			session, err := auth.ResolveSession(ctx, token)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					logger.Error("session lookup failed", zap.Error(err))
				}
				reject(ctx)
				return
			}

			ctx.SetUserValue(ownerEmailKey, session.OwnerEmail)
			next(ctx)
		}
	}
}

// Token extracts the session token from the cookie or the Authorization
// header.
func Token(ctx *fasthttp.RequestCtx, cookieName string) string {
	if cookie := string(ctx.Request.Header.Cookie(cookieName)); cookie != "" {
		return cookie
	}
	header := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// OwnerEmail returns the identity attached by the Session middleware.
func OwnerEmail(ctx *fasthttp.RequestCtx) string {
	email, _ := ctx.UserValue(ownerEmailKey).(string)
	return email
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusUnauthorized)
	body, _ := json.Marshal(transport.Fail(domain.ErrNotLoggedIn.Message))
	ctx.SetBody(body)
}
