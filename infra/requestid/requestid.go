package requestid

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

type ctxKey struct{}

var key = ctxKey{}

const Header = "X-Request-ID"

func FromContext(ctx context.Context) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

func Generate() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// Middleware attaches a request id to the context and echoes it back in the
// response, generating one when the client did not send it.
func Middleware(c *gin.Context) {
	id := c.GetHeader(Header)
	if id == "" {
		id = Generate()
	}
	c.Request = c.Request.WithContext(NewContext(c.Request.Context(), id))
	c.Writer.Header().Set(Header, id)
	c.Next()
}
