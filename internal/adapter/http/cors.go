package httpadapter

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	corsReadMethods  = "GET,OPTIONS"
	corsWriteMethods = "POST,OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// corsPolicy lets a browser dashboard on another origin read the colony and
// drive it. Only assign and advance accept writes.
type corsPolicy struct {
	origin string
}

func newCORSPolicy(origin string) corsPolicy {
	if strings.TrimSpace(origin) == "" {
		origin = "*"
	}
	return corsPolicy{origin: origin}
}

func (p corsPolicy) apply(ctx *app.RequestContext) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", p.origin)
	if p.origin != "*" {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsMethods(string(ctx.Path())))
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMethods(path string) string {
	if path == "/api/sim/advance" || (strings.HasPrefix(path, "/api/colonists/") && strings.HasSuffix(path, "/assign")) {
		return corsWriteMethods
	}
	return corsReadMethods
}

func (p corsPolicy) middleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		p.apply(ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
