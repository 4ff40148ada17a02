// Package main starts the garagedesk terminal client: it loads
// configuration, restores a persisted session, and drops into an
// interactive shell against the vehicle-service backend.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahakimov/garagedesk/internal/api"
	"github.com/ahakimov/garagedesk/internal/config"
	"github.com/ahakimov/garagedesk/internal/filter"
	"github.com/ahakimov/garagedesk/internal/logger"
	"github.com/ahakimov/garagedesk/internal/models"
	"github.com/ahakimov/garagedesk/internal/resource"
	"github.com/ahakimov/garagedesk/internal/session"
)

var (
	version   string
	buildDate string
)

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println("failed to render:", err)
		return
	}
	fmt.Println(string(b))
}

func printOutcome(resp api.Response) {
	if !resp.OK() {
		fmt.Printf("Error (%d): %s\n", resp.Status, resp.Error)
		return
	}
	if resp.Data == nil {
		fmt.Printf("OK (%d)\n", resp.Status)
		return
	}
	printJSON(resp.Data)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Println("invalid id:", s)
		return 0, false
	}
	return id, true
}

// listResource dispatches "list <resource>" to the right gateway.
func listResource(ctx context.Context, reg *resource.Registry, name string) {
	switch name {
	case "clients":
		items, resp := reg.Clients.List(ctx)
		renderList(items, resp)
	case "mechanics":
		items, resp := reg.Mechanics.List(ctx)
		renderList(items, resp)
	case "cars":
		items, resp := reg.Cars.List(ctx)
		renderList(items, resp)
	case "services":
		items, resp := reg.Services.List(ctx)
		renderList(items, resp)
	case "users":
		items, resp := reg.Users.List(ctx)
		renderList(items, resp)
	case "jobs":
		items, resp := reg.RepairJobs.List(ctx)
		renderList(items, resp)
	case "requests":
		items, resp := reg.VisitorRequests.List(ctx)
		renderList(items, resp)
	default:
		fmt.Println("unknown resource:", name)
	}
}

func renderList[T any](items []T, resp api.Response) {
	if !resp.OK() {
		fmt.Printf("Error (%d): %s\n", resp.Status, resp.Error)
		return
	}
	if len(items) == 0 {
		fmt.Println("(empty)")
		return
	}
	printJSON(items)
}

func deleteResource(ctx context.Context, reg *resource.Registry, name string, id int64) {
	switch name {
	case "clients":
		printOutcome(reg.Clients.Delete(ctx, id))
	case "mechanics":
		printOutcome(reg.Mechanics.Delete(ctx, id))
	case "cars":
		printOutcome(reg.Cars.Delete(ctx, id))
	case "services":
		printOutcome(reg.Services.Delete(ctx, id))
	case "users":
		printOutcome(reg.Users.Delete(ctx, id))
	case "jobs":
		printOutcome(reg.RepairJobs.Delete(ctx, id))
	case "reservations":
		printOutcome(reg.Reservations.Delete(ctx, id))
	case "requests":
		printOutcome(reg.VisitorRequests.Delete(ctx, id))
	default:
		fmt.Println("unknown resource:", name)
	}
}

// showReservations fetches all reservations and applies the
// key=value filter arguments locally, printing the derived display
// status next to each row.
func showReservations(ctx context.Context, reg *resource.Registry, args []string) {
	items, resp := reg.Reservations.List(ctx)
	if !resp.OK() {
		fmt.Printf("Error (%d): %s\n", resp.Status, resp.Error)
		return
	}

	var f filter.ReservationFilter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Println("expected key=value, got:", arg)
			return
		}
		switch key {
		case "status":
			f.Status = value
		case "q":
			f.Query = value
		case "mechanic":
			id, ok := parseID(value)
			if !ok {
				return
			}
			f.MechanicID = id
		case "client":
			id, ok := parseID(value)
			if !ok {
				return
			}
			f.ClientID = id
		case "from", "to":
			t, ok := filter.ParseTime(value)
			if !ok {
				fmt.Println("invalid date:", value)
				return
			}
			if key == "from" {
				f.DateFrom = &t
			} else {
				f.DateTo = &t
			}
		default:
			fmt.Println("unknown filter:", key)
			return
		}
	}

	now := time.Now()
	matched := filter.Reservations(items, f, now)
	if len(matched) == 0 {
		fmt.Println("(no matching reservations)")
		return
	}
	for _, r := range matched {
		st := filter.ReservationStatus(r, now)
		fmt.Printf("#%d  %s  %s → %s  [%s]\n",
			r.ID, r.ClientName, r.VisitDateTime, r.EndDateTime, st.Label)
	}
}

func repl(mgr *session.Manager, reg *resource.Registry) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("garagedesk> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Commands: help, login <email> <password>, signup <email> <password> <name> <surname>,")
			fmt.Println("  logout, whoami, list <resource>, get <resource> <id>, delete <resource> <id>,")
			fmt.Println("  reservations [status=..] [from=..] [to=..] [mechanic=..] [client=..] [q=..],")
			fmt.Println("  schedule [mechanic=<id>], exit")
			fmt.Println("Resources: clients, mechanics, cars, services, users, reservations, jobs, requests")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			printOutcome(mgr.Login(ctx, args[1], args[2]))
		case "signup":
			if len(args) < 5 {
				fmt.Println("Usage: signup <email> <password> <name> <surname>")
				continue
			}
			printOutcome(mgr.Signup(ctx, models.SignupRequest{
				Email:    args[1],
				Password: args[2],
				Name:     args[3],
				Surname:  args[4],
			}))
		case "logout":
			mgr.Logout()
			fmt.Println("Logged out")
		case "whoami":
			if u := mgr.User(); u != nil {
				printJSON(u)
			} else {
				fmt.Println("Not logged in")
			}
		case "list":
			if len(args) < 2 {
				fmt.Println("Usage: list <resource>")
				continue
			}
			if args[1] == "reservations" {
				showReservations(ctx, reg, nil)
				continue
			}
			listResource(ctx, reg, args[1])
		case "get":
			if len(args) < 3 {
				fmt.Println("Usage: get <resource> <id>")
				continue
			}
			id, ok := parseID(args[2])
			if !ok {
				continue
			}
			getResource(ctx, reg, args[1], id)
		case "delete":
			if len(args) < 3 {
				fmt.Println("Usage: delete <resource> <id>")
				continue
			}
			id, ok := parseID(args[2])
			if !ok {
				continue
			}
			deleteResource(ctx, reg, args[1], id)
		case "reservations":
			showReservations(ctx, reg, args[1:])
		case "schedule":
			query := url.Values{}
			for _, arg := range args[1:] {
				if key, value, ok := strings.Cut(arg, "="); ok {
					query.Set(key, value)
				}
			}
			items, resp := reg.Reservations.Schedule(ctx, query)
			renderList(items, resp)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func getResource(ctx context.Context, reg *resource.Registry, name string, id int64) {
	switch name {
	case "clients":
		item, resp := reg.Clients.Get(ctx, id)
		renderOne(item, resp)
	case "mechanics":
		item, resp := reg.Mechanics.Get(ctx, id)
		renderOne(item, resp)
	case "cars":
		item, resp := reg.Cars.Get(ctx, id)
		renderOne(item, resp)
	case "services":
		item, resp := reg.Services.Get(ctx, id)
		renderOne(item, resp)
	case "users":
		item, resp := reg.Users.Get(ctx, id)
		renderOne(item, resp)
	case "reservations":
		item, resp := reg.Reservations.Get(ctx, id)
		renderOne(item, resp)
	case "jobs":
		item, resp := reg.RepairJobs.Get(ctx, id)
		renderOne(item, resp)
	case "requests":
		item, resp := reg.VisitorRequests.Get(ctx, id)
		renderOne(item, resp)
	default:
		fmt.Println("unknown resource:", name)
	}
}

func renderOne[T any](item *T, resp api.Response) {
	if !resp.OK() {
		fmt.Printf("Error (%d): %s\n", resp.Status, resp.Error)
		return
	}
	if item == nil {
		fmt.Println("(not found)")
		return
	}
	printJSON(item)
}

func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("garagedesk\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	appLog := logger.New()
	if err := appLog.Init(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = appLog.Log.Sync() }()

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			appLog.Log.Fatal("cannot resolve session path", zap.Error(err))
		}
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, appLog.Log)
	store := session.NewStore(sessionPath)
	mgr := session.NewManager(client, store, appLog.Log)
	mgr.Initialize()

	reg := resource.NewRegistry(client)

	if u := mgr.User(); u != nil {
		fmt.Printf("Welcome back, %s\n", u.Username)
	}
	repl(mgr, reg)
}
