package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sliceline/pizzaorders/internal/core/domain"
	"github.com/sliceline/pizzaorders/internal/core/port"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const accessPayloadKey = "access_payload"

const requestIDHeader = "X-Request-ID"
const requestIDKey = "request_id"

// requestID tags every request with a fresh identifier for log correlation.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := uuid.NewString()
		ctx.Set(requestIDKey, id)
		ctx.Header(requestIDHeader, id)

		ctx.Next()
	}
}

func requestIDFrom(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}

// capabilityCheck verifies the access token issued by the upstream auth
// service and requires the given capability in its payload.
func capabilityCheck(access port.AccessService, capability string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := access.VerifyToken(token)
		if err != nil {
			handleAbort(ctx, domain.ErrInvalidToken)
			return
		}
		if !payload.Has(capability) {
			handleAbort(ctx, domain.ErrForbidden)
			return
		}

		ctx.Set(accessPayloadKey, payload)

		ctx.Next()
	}
}

func getAccessPayload(ctx *gin.Context) *port.AccessPayload {
	return ctx.MustGet(accessPayloadKey).(*port.AccessPayload)
}
