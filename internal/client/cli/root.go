package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/admintieri/tractoradmin/internal/client/session"
)

func (a *App) getStatus() string {
	_, identity := a.cache.Snapshot()
	if identity == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", identity.Email)
}

// dispatch runs a single protected command. Used both for direct input and
// for replaying the command parked by the guard after a login.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	switch cmd {
	case "new":
		q := strings.Join(args, " ")
		_ = a.listTractors(ctx, "nuovi", q)
	case "used":
		q := strings.Join(args, " ")
		_ = a.listTractors(ctx, "usati", q)
	case "audit":
		_ = a.listAudit(ctx, page)
	case "users":
		_ = a.listUsers(ctx, page)
	}
}

// guarded routes a protected command through the session guard: proceed when
// authenticated, or bounce to login and replay the command afterwards.
func (a *App) guarded(ctx context.Context, cmd string, args []string) {
	status, _ := a.cache.Snapshot()

	decision, _ := a.guard.Check(status, cmd)
	switch decision {
	case session.DecisionProceed:
		a.dispatch(ctx, cmd, args)
	case session.DecisionRedirect:
		fmt.Println("Please login first")
		if err := a.Login(ctx); err != nil {
			return
		}
		a.dispatch(ctx, a.guard.Consume(cmd), args)
	case session.DecisionWait:
		fmt.Println("Still checking your session, try again")
	}
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the tractor admin CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("tadm %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: new, used, audit, users, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: login, whoami, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "new", "used", "audit", "users":
			a.guarded(ctx, cmd, args)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
