package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kbenhlel/TodoKeeper/internal/client/api"
	"github.com/kbenhlel/TodoKeeper/internal/client/storage"
	"github.com/kbenhlel/TodoKeeper/internal/config"
	"github.com/kbenhlel/TodoKeeper/internal/logger"
	"github.com/kbenhlel/TodoKeeper/internal/models"
	"github.com/kbenhlel/TodoKeeper/internal/store"
)

var (
	version   string
	buildDate string
)

// demoUsers is the fixed credential table used when no gateway is
// configured.
var demoUsers = []store.Credential{
	{ID: "1", Email: "demo@example.com", Name: "Demo User", Password: "Demo123!"},
}

// app bundles the stores the shell works against. client is nil when
// running against local storage only.
type app struct {
	remote   bool
	client   *api.Client
	storage  *storage.LocalStorage
	sessions *store.SessionStore
	todos    *store.TodoStore
}

// repl runs the interactive shell loop, accepting commands to manage
// the todo list and the session.
func repl(a *app) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("todokeeper> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, register <name> <email> <password>,")
			fmt.Println("  logout, whoami, add <text>, list, filter <all|active|completed>, toggle <id>,")
			fmt.Println("  edit <id> <text>, delete <id>, stats, clear-error, clear-all, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if a.sessions.Login(ctx, args[1], args[2]) {
				fmt.Println("Logged in as", a.sessions.Session().Name)
				a.todos.Load(ctx)
			} else {
				fmt.Println(a.sessions.Err())
			}
		case "register":
			a.register(ctx, args[1:])
		case "logout":
			a.sessions.Logout()
			a.todos.Reset()
			fmt.Println("Logged out")
		case "whoami":
			if s := a.sessions.Session(); s != nil {
				fmt.Printf("%s <%s>\n", s.Name, s.Email)
			} else {
				fmt.Println("Not logged in")
			}
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <text>")
				continue
			}
			if !a.ready() {
				continue
			}
			text := strings.TrimSpace(strings.TrimPrefix(line, "add"))
			if err := a.todos.Add(ctx, text); err != nil {
				fmt.Println("Could not add todo:", a.errText(err))
			}
		case "list":
			a.list()
		case "filter":
			if len(args) < 2 {
				fmt.Println("Usage: filter <all|active|completed>")
				continue
			}
			a.todos.SetFilter(models.Filter(args[1]))
			a.storage.SavePreferences(map[string]any{"filter": args[1]})
			a.list()
		case "toggle":
			if len(args) < 2 {
				fmt.Println("Usage: toggle <id>")
				continue
			}
			if !a.ready() {
				continue
			}
			if err := a.todos.Toggle(ctx, args[1]); err != nil {
				fmt.Println("Could not toggle todo:", a.errText(err))
			}
		case "edit":
			if len(args) < 3 {
				fmt.Println("Usage: edit <id> <text>")
				continue
			}
			if !a.ready() {
				continue
			}
			a.edit(ctx, args[1], strings.Join(args[2:], " "))
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if !a.ready() {
				continue
			}
			if err := a.todos.Delete(ctx, args[1]); err != nil {
				fmt.Println("Could not delete todo:", a.errText(err))
			}
		case "stats":
			s := a.todos.Stats()
			fmt.Printf("%d total, %d active, %d completed\n", s.Total, s.Active, s.Completed)
		case "clear-error":
			a.todos.ClearError()
			a.sessions.ClearError()
		case "clear-all":
			a.sessions.ClearAllData()
			a.todos.Reset()
			fmt.Println("All local data cleared")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// ready gates mutating commands on an authenticated session when the
// gateway is the source of truth.
func (a *app) ready() bool {
	if a.remote && !a.sessions.Authenticated() {
		fmt.Println("Please login first")
		return false
	}
	return true
}

func (a *app) register(ctx context.Context, args []string) {
	if a.client == nil {
		fmt.Println("Registration requires the remote gateway (-remote)")
		return
	}
	if len(args) < 3 {
		fmt.Println("Usage: register <name> <email> <password>")
		return
	}
	// Everything before the last two fields is the display name.
	name := strings.Join(args[:len(args)-2], " ")
	email, password := args[len(args)-2], args[len(args)-1]
	if err := a.client.Register(ctx, name, email, password); err != nil {
		fmt.Println("Could not register:", err)
		return
	}
	fmt.Println("Registered. You can now login.")
}

func (a *app) edit(ctx context.Context, id, text string) {
	for _, t := range a.todos.Todos() {
		if t.ID == id {
			t.Text = text
			if err := a.todos.Update(ctx, t); err != nil {
				fmt.Println("Could not edit todo:", a.errText(err))
			}
			return
		}
	}
	fmt.Println("Todo not found")
}

func (a *app) list() {
	todos := a.todos.Filtered()
	if len(todos) == 0 {
		fmt.Println("No todos")
		return
	}
	for _, t := range todos {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Text)
	}
	if err := a.todos.Err(); err != "" {
		fmt.Println("Last error:", err)
	}
}

// errText prefers the store's user-facing error string over the raw error.
func (a *app) errText(err error) string {
	if msg := a.todos.Err(); msg != "" {
		return msg
	}
	return err.Error()
}

// main wires the client together in a fixed order: local storage first,
// then the repositories over it, then the stores. Everything is passed
// by handle; nothing global.
func main() {
	options := config.Parse()

	fmt.Printf("TodoKeeper Client\nVersion: %s\nBuild Date: %s\n",
		orNA(version), orNA(buildDate))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("warn"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	// Seal the storage file with a host-derived key.
	hostname, _ := os.Hostname()
	aead, err := storage.NewAEAD([]byte("TodoKeeper::" + hostname))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init storage cipher:", err)
		os.Exit(1)
	}
	ls := storage.New(options.StoragePath, aead, log.Log)

	a := &app{remote: options.Remote, storage: ls}
	if options.Remote {
		client := api.New(options.ServerURL, nil, ls)
		a.client = client
		a.sessions = store.NewSessionStore(store.NewGatewayAuthenticator(client), ls)
		a.todos = store.NewTodoStore(store.NewRemoteRepository(client))
		// Server state is only fetched for a live session.
		if a.sessions.Authenticated() {
			a.todos.Load(context.Background())
		}
	} else {
		a.sessions = store.NewSessionStore(store.NewMockAuthenticator(demoUsers), ls)
		a.todos = store.NewTodoStore(store.NewLocalRepository(ls))
		a.todos.Load(context.Background())
	}

	// Restore the last selected filter, if one was saved.
	if prefs := ls.LoadPreferences(); prefs != nil {
		if f, ok := prefs["filter"].(string); ok {
			a.todos.SetFilter(models.Filter(f))
		}
	}

	repl(a)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
