package cli

import (
	"context"
	"fmt"
)

func (a *App) accountRegister(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	if err := a.engine.RegisterAccount(ctx, a.config.ServerBaseURL, a.config.Username); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Account registration queued for %q\n", a.config.Username)
}

// login talks to the server directly: there is nothing durable about a
// failed login worth replaying later.
func (a *App) login(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	resp, err := a.engine.Login(ctx, a.config.ServerBaseURL, a.config.Username)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, resp.Message)
}
