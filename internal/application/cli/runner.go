package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go-todo/internal/domain/entity"
	"go-todo/internal/domain/model"
	"go-todo/internal/domain/usecase/todo"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	maxTitleWidth = 60
)

// Runner executes one todo subcommand against a loaded store
type Runner struct {
	store  todo.UseCase
	out    io.Writer
	err    io.Writer
	styles styles
}

func NewRunner(store todo.UseCase, out, err io.Writer) *Runner {
	return &Runner{
		store:  store,
		out:    out,
		err:    err,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run dispatches args and returns the exit code (0 ok, 1 error, 2 usage)
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return exitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return exitOK
	case "ls":
		return r.list()
	case "add":
		return r.add(ctx, a)
	case "show":
		return r.withTarget("show", a, r.show)
	case "done":
		return r.withTarget("done", a, func(item entity.Todo) int { return r.toggle(ctx, item) })
	case "rm":
		return r.withTarget("rm", a, func(item entity.Todo) int { return r.remove(ctx, item) })
	case "edit":
		if len(a) < 2 {
			r.fail("usage: todo edit <n> <title...>")
			return exitUsage
		}
		title := strings.Join(a[1:], " ")
		return r.withTarget("edit", a[:1], func(item entity.Todo) int { return r.edit(ctx, item, title) })
	}

	r.fail("unknown subcommand: " + cmd)
	r.PrintHelp()
	return exitUsage
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.out, `todo - keep a list of things to do

Usage:
  todo <subcommand> [args]

Subcommands:
  add <title...> [-d <description...>]  Add a todo at the top of the list
  ls                                    List todos, newest first
  show <n>                              Show one todo
  done <n>                              Toggle a todo between pending and done
  edit <n> <title...>                   Change the title of a todo
  rm <n>                                Remove a todo
  help                                  Show this help

<n> is the 1-based position shown by ls, or a todo id.

Examples:
  todo add Buy milk -d 2 litres
  todo done 1
  todo rm 2
`)
}

func (r *Runner) list() int {
	items := r.store.List()
	pending, done := model.CountByState(items)

	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %d  %s %d",
			r.styles.title.Render("Todos"),
			r.styles.success.Render("✔"), done,
			r.styles.pending.Render("•"), pending,
			r.styles.accent.Render("Total"), len(items)),
		r.styles.muted.Render(progressBar(done, len(items), 28)),
		"",
	}

	if len(items) == 0 {
		lines = append(lines, r.styles.muted.Render("nothing to do"))
	}
	for i, item := range items {
		box, title := boxUnchecked, truncate(item.Title)
		if item.Completed {
			box, title = r.styles.success.Render(boxChecked), r.styles.done.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", r.styles.muted.Render(fmt.Sprintf("%2d.", i+1)), box, title))
	}

	lines = append(lines, "", r.styles.muted.Render(`Tip: add with "todo add Buy milk"`))
	fmt.Fprintln(r.out, r.styles.panel.Render(strings.Join(lines, "\n")))
	return exitOK
}

func (r *Runner) add(ctx context.Context, args []string) int {
	titleArgs, description := args, ""
	for i, arg := range args {
		if arg == "-d" || arg == "--description" {
			if i == len(args)-1 {
				r.fail("usage: todo add <title...> [-d <description...>]")
				return exitUsage
			}
			titleArgs, description = args[:i], strings.Join(args[i+1:], " ")
			break
		}
	}
	if len(titleArgs) == 0 {
		r.fail("usage: todo add <title...> [-d <description...>]")
		return exitUsage
	}

	created, err := r.store.Add(ctx, model.CreateTodoDTO{Title: strings.Join(titleArgs, " "), Description: description})
	if errors.Is(err, todo.ErrValidation) {
		r.fail("add: " + err.Error())
		return exitUsage
	}
	if err != nil {
		r.fail("save: " + err.Error())
		return exitError
	}
	r.ok("added " + created.Title)
	return exitOK
}

func (r *Runner) show(item entity.Todo) int {
	state := r.styles.pending.Render("pending")
	if item.Completed {
		state = r.styles.success.Render("done")
	}
	lines := []string{
		r.styles.title.Render(item.Title),
		"",
		r.styles.muted.Render("id       ") + item.ID,
		r.styles.muted.Render("status   ") + state,
		r.styles.muted.Render("created  ") + formatMillis(item.CreatedAt),
		r.styles.muted.Render("updated  ") + formatMillis(item.UpdatedAt),
	}
	if item.Description != "" {
		lines = append(lines, "", item.Description)
	}
	fmt.Fprintln(r.out, r.styles.panel.Render(strings.Join(lines, "\n")))
	return exitOK
}

func (r *Runner) toggle(ctx context.Context, item entity.Todo) int {
	toggled, err := r.store.Toggle(ctx, item.ID)
	if err != nil {
		r.fail("save: " + err.Error())
		return exitError
	}
	if toggled.Completed {
		r.ok("done " + toggled.Title)
	} else {
		r.ok("reopened " + toggled.Title)
	}
	return exitOK
}

func (r *Runner) edit(ctx context.Context, item entity.Todo, title string) int {
	updated, err := r.store.Update(ctx, item.ID, model.UpdateTodoDTO{Title: &title})
	if errors.Is(err, todo.ErrValidation) {
		r.fail("edit: " + err.Error())
		return exitUsage
	}
	if err != nil {
		r.fail("save: " + err.Error())
		return exitError
	}
	r.ok("renamed to " + updated.Title)
	return exitOK
}

func (r *Runner) remove(ctx context.Context, item entity.Todo) int {
	if _, err := r.store.Remove(ctx, item.ID); err != nil {
		r.fail("save: " + err.Error())
		return exitError
	}
	r.ok("removed " + item.Title)
	return exitOK
}

// withTarget resolves the single <n> argument of a subcommand before running fn
func (r *Runner) withTarget(cmd string, args []string, fn func(entity.Todo) int) int {
	if len(args) != 1 {
		r.fail(fmt.Sprintf("usage: todo %s <n>", cmd))
		return exitUsage
	}
	item, ok := r.resolve(args[0])
	if !ok {
		r.fail(fmt.Sprintf("%s: no todo %s", cmd, args[0]))
		fmt.Fprintln(r.err, r.styles.muted.Render(`Hint: run "todo ls" to see valid positions`))
		return exitUsage
	}
	return fn(item)
}

func (r *Runner) resolve(ref string) (entity.Todo, bool) {
	items := r.store.List()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], true
	}
	if found := r.store.GetByID(ref); found != nil {
		return *found, true
	}
	return entity.Todo{}, false
}

func (r *Runner) ok(message string) {
	fmt.Fprintln(r.out, r.styles.success.Render("✔ "+message))
}

func (r *Runner) fail(message string) {
	fmt.Fprintln(r.err, r.styles.fail.Render("✖ "+message))
}

func truncate(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleWidth {
		return string(runes[:maxTitleWidth-3]) + "..."
	}
	return title
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
