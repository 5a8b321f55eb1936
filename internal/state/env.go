// Package state defines shared program state carried through the command
// context.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storyscroll/internal/config"
)

type envKey struct{}

// Env keeps everything the program needs in a single place.
type Env struct {
	Cfg *config.Config
	Log *zap.Logger

	start time.Time
}

func newEnv() *Env {
	return &Env{start: time.Now()}
}

// ContextWithEnv attaches a fresh environment to ctx.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newEnv())
}

// EnvFromContext retrieves the environment; commands always run with one.
func EnvFromContext(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok {
		return env
	}
	// this should never happen
	panic("env not found in context")
}

// Uptime is the time since the environment was created.
func (e *Env) Uptime() time.Duration {
	return time.Since(e.start)
}
