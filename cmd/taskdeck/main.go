// Command taskdeck is a terminal client for the taskdeck server. It keeps
// tasks and categories in local state containers, hydrated from the API at
// startup; every local mutation is pushed back through the syncer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"taskdeck/internal/client"
	"taskdeck/internal/dates"
	"taskdeck/internal/logging"
	"taskdeck/internal/model"
	"taskdeck/internal/store"
	"taskdeck/internal/syncer"
	"taskdeck/internal/validate"
)

const usage = `usage: taskdeck [flags] <command> [args]

commands:
  tasks [-category id]   list tasks, open ones first
  add                    add a task (-title, -category, -due, -priority, -desc, -notes)
  done <id>              toggle task completion
  rm <id>                delete a task
  categories             list categories
  addcat                 add a category (-name, -color)
  rmcat <id>             delete a category
  profile                show the signed-in profile

flags:
`

func main() {
	fs := flag.NewFlagSet("taskdeck", flag.ExitOnError)
	server := fs.String("server", envOr("TASKDECK_SERVER", "http://localhost:8080"), "server base URL")
	email := fs.String("email", os.Getenv("TASKDECK_EMAIL"), "account email")
	password := fs.String("password", os.Getenv("TASKDECK_PASSWORD"), "account password")
	signup := fs.Bool("signup", false, "create the account instead of signing in")
	name := fs.String("name", "", "display name for -signup")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	if errs := validate.LoginForm(*email, *password); len(errs) > 0 {
		printFieldErrors(errs)
		os.Exit(1)
	}
	if *signup {
		if errs := validate.SignupForm(*name, *email, *password, *password); len(errs) > 0 {
			printFieldErrors(errs)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	api := client.New(strings.TrimRight(*server, "/"))
	tasks := store.NewTaskStore()
	categories := store.NewCategoryStore()
	session := store.NewAuthStore(api)
	api.OnSessionChange(session.HandleSession)

	if *signup {
		session.Signup(ctx, *email, *password, *name)
	} else {
		session.Login(ctx, *email, *password)
	}
	if session.State() != store.StateAuthenticated {
		fmt.Fprintf(os.Stderr, "sign-in failed: %s\n", session.Err())
		os.Exit(1)
	}

	sync := syncer.New(api, tasks, categories, logger)
	if err := sync.Hydrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "load data: %v\n", err)
		os.Exit(1)
	}
	sync.Start(ctx)
	defer sync.Stop()

	if err := run(ctx, fs.Args(), tasks, categories, session); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, tasks *store.TaskStore, categories *store.CategoryStore, session *store.AuthStore) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "tasks":
		fs := flag.NewFlagSet("tasks", flag.ExitOnError)
		category := fs.String("category", "", "filter by category id")
		fs.Parse(rest)
		printTasks(tasks.Sorted(*category), categories)
		return nil

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		title := fs.String("title", "", "task title")
		category := fs.String("category", "", "category id")
		due := fs.String("due", "", "due date (2006-01-02)")
		priority := fs.String("priority", "", "LOW, MEDIUM or HIGH")
		desc := fs.String("desc", "", "description")
		notes := fs.String("notes", "", "notes")
		fs.Parse(rest)

		if errs := validate.TaskForm(*title, *category); len(errs) > 0 {
			printFieldErrors(errs)
			return fmt.Errorf("task not added")
		}

		form := store.TaskForm{
			Title:       *title,
			Description: *desc,
			Notes:       *notes,
			CategoryID:  *category,
			Priority:    model.Priority(strings.ToUpper(*priority)),
		}
		if *due != "" {
			d, err := time.ParseInLocation("2006-01-02", *due, time.Local)
			if err != nil {
				return fmt.Errorf("invalid due date %q, expected 2006-01-02", *due)
			}
			form.DueDate = &d
		}

		task := tasks.Add(form)
		fmt.Printf("added %s  %s\n", task.ID, task.Title)
		return nil

	case "done":
		if len(rest) != 1 {
			return fmt.Errorf("usage: taskdeck done <id>")
		}
		tasks.Toggle(rest[0])
		if task, ok := tasks.Get(rest[0]); ok {
			fmt.Printf("%s completed=%v\n", task.Title, task.Completed)
		}
		return nil

	case "rm":
		if len(rest) != 1 {
			return fmt.Errorf("usage: taskdeck rm <id>")
		}
		tasks.Delete(rest[0])
		return nil

	case "categories":
		for _, c := range categories.List() {
			fmt.Printf("%s  %-20s %s\n", c.ID, c.Name, c.Color)
		}
		return nil

	case "addcat":
		fs := flag.NewFlagSet("addcat", flag.ExitOnError)
		name := fs.String("name", "", "category name")
		color := fs.String("color", "", "category color")
		fs.Parse(rest)

		if errs := validate.CategoryForm(*name, *color); len(errs) > 0 {
			printFieldErrors(errs)
			return fmt.Errorf("category not added")
		}

		category := categories.Add(store.CategoryForm{Name: *name, Color: *color})
		fmt.Printf("added %s  %s\n", category.ID, category.Name)
		return nil

	case "rmcat":
		if len(rest) != 1 {
			return fmt.Errorf("usage: taskdeck rmcat <id>")
		}
		categories.Delete(rest[0])
		return nil

	case "profile":
		user, ok := session.User()
		if !ok {
			return fmt.Errorf("not signed in")
		}
		fmt.Printf("%s <%s>\n", user.DisplayName, user.Email)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func printTasks(list []model.Task, categories *store.CategoryStore) {
	now := time.Now()
	for _, t := range list {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %s  %-30s %s", mark, t.ID, t.Title, dates.Relative(t.DueDate, now))
		if category, ok := categories.Get(t.CategoryID); ok {
			line += "  #" + category.Name
		}
		fmt.Println(line)
	}
}

func printFieldErrors(errs validate.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(os.Stderr, "%s: %s\n", field, errs[field])
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
