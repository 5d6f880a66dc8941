package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
)

func TestCORSMethodsFollowRoutes(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/colony", corsReadMethods},
		{"/api/colonists/ada", corsReadMethods},
		{"/api/colonists/ada/replay", corsReadMethods},
		{"/api/colonists/ada/assign", corsWriteMethods},
		{"/api/sim/advance", corsWriteMethods},
		{"/ops/kpi", corsReadMethods},
	}
	for _, tt := range tests {
		ctx := &app.RequestContext{}
		ctx.Request.SetRequestURI(tt.path)
		newCORSPolicy("").apply(ctx)

		assert.Equal(t, tt.want, string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")), tt.path)
		assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), tt.path)
		assert.Equal(t, corsAllowHeaders, string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), tt.path)
	}
}

func TestCORSPinnedOriginVaries(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/colony")
	newCORSPolicy("https://dash.example").apply(ctx)

	assert.Equal(t, "https://dash.example", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "Origin", string(ctx.Response.Header.Peek("Vary")))
}

func TestCORSPreflightStopsChain(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/sim/advance")
	ctx.Request.Header.SetMethod(consts.MethodOptions)

	newCORSPolicy("*").middleware()(context.Background(), ctx)

	assert.Equal(t, consts.StatusNoContent, ctx.Response.StatusCode())
	assert.True(t, ctx.IsAborted())
	assert.Equal(t, corsWriteMethods, string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")))
}
