package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if id := a.creds.Current(); id != nil {
		s = id.Nickname + " "
	}
	s += string(a.getMode())
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user and runs the REPL on the app's reader.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to gophledger (type 'help' for commands)")
	if !a.isLoggedIn() {
		a.println("'login' 또는 'register'로 시작하세요.")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
