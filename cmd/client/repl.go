package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vaultkit/go-pin-vault/internal/vault"
	"github.com/vaultkit/go-pin-vault/models"
)

// repl is a minimal line-oriented console over the vault service. It exists
// for manual smoke testing of a configured backend; the real user interface
// is provided by the application embedding this module.
type repl struct {
	svc   vault.Service
	owner string
	in    *bufio.Scanner
	out   io.Writer

	// pin is kept for the duration of the console run so content operations
	// can derive keys without re-prompting on every command.
	pin string
}

func newREPL(svc vault.Service, owner string, in io.Reader, out io.Writer) *repl {
	return &repl{svc: svc, owner: owner, in: bufio.NewScanner(in), out: out}
}

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintln(r.out, "commands: setup | unlock | lock | add <type> <title> | list | show <id> | rm <id> | status | quit")

	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return r.in.Err()
		}

		args := strings.Fields(r.in.Text())
		if len(args) == 0 {
			continue
		}

		var err error
		switch args[0] {
		case "quit", "exit":
			return nil
		case "status":
			fmt.Fprintln(r.out, statusString(r.svc.Status()))
		case "setup":
			err = r.setup()
		case "unlock":
			err = r.unlock()
		case "lock":
			r.svc.Lock()
			r.pin = ""
		case "add":
			err = r.add(ctx, args[1:])
		case "list":
			err = r.list(ctx)
		case "show":
			err = r.show(ctx, args[1:])
		case "rm":
			err = r.remove(ctx, args[1:])
		default:
			fmt.Fprintf(r.out, "unknown command %q\n", args[0])
		}
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *repl) setup() error {
	pin, err := r.prompt("new pin (4-8 digits): ")
	if err != nil {
		return err
	}
	if err = r.svc.SetupPin(pin); err != nil {
		return err
	}
	r.pin = pin
	fmt.Fprintln(r.out, "vault initialized and unlocked")
	return nil
}

func (r *repl) unlock() error {
	pin, err := r.prompt("pin: ")
	if err != nil {
		return err
	}
	if err = r.svc.Unlock(pin); err != nil {
		return err
	}
	r.pin = pin
	fmt.Fprintln(r.out, "unlocked")
	return nil
}

func (r *repl) add(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <type> <title>")
	}

	content, err := r.prompt("content (empty for none): ")
	if err != nil {
		return err
	}

	item, err := r.svc.Create(ctx, vault.CreateParams{
		OwnerID: r.owner,
		Type:    models.ItemType(args[0]),
		Title:   strings.Join(args[1:], " "),
		Content: content,
	}, r.pin)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "created %s\n", item.ID)
	return nil
}

func (r *repl) list(ctx context.Context) error {
	items, err := r.svc.List(ctx, r.owner)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintf(r.out, "%s  %-8s  %s\n", item.ID, item.Type, item.Title)
	}
	return nil
}

func (r *repl) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}

	item, err := r.svc.Read(ctx, r.owner, args[0])
	if err != nil {
		return err
	}
	content, err := r.svc.DecryptContent(item, r.pin)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s (%s)\n", item.Title, item.Type)
	if content != "" {
		fmt.Fprintln(r.out, content)
	}
	if ref := item.Metadata.FileRef; ref != nil {
		fmt.Fprintf(r.out, "attachment: %s (%s)\n", ref.Name, ref.URL)
	}
	return nil
}

func (r *repl) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <id>")
	}
	if err := r.svc.Delete(ctx, r.owner, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(r.out, "deleted")
	return nil
}

func (r *repl) prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func statusString(s vault.Status) string {
	switch s {
	case vault.StatusNoCredential:
		return "no pin configured, run setup"
	case vault.StatusUnlocked:
		return "unlocked"
	default:
		return "locked"
	}
}
