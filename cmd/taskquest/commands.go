package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/game"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/report"
	"github.com/sandeepkv93/taskquest/internal/store"
)

// readPassword prompts on a terminal without echo and falls back to one
// plain line when stdin is piped.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pass), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignUpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, opts, args[0], true)
		},
	}
}

func newSignInCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signin <email>",
		Short: "Sign in and keep the session for later runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authenticate(cmd, opts, args[0], false)
		},
	}
}

func authenticate(cmd *cobra.Command, opts *rootOptions, email string, signUp bool) error {
	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	var u *store.User
	if signUp {
		u, err = a.client.SignUp(cmd.Context(), email, password)
	} else {
		u, err = a.client.SignIn(cmd.Context(), email, password)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", u.Email)
	return nil
}

func newSignOutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.client.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <mission...>",
		Short: "Add a mission; accepts p:, w: and due: tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := commands.ParseAdd(strings.Join(args, " "))
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			u, err := a.requireUser()
			if err != nil {
				return err
			}
			t, err := a.client.CreateTask(cmd.Context(), store.NewTask{
				Title:    parsed.Title,
				OwnerID:  u.ID,
				World:    parsed.World,
				Priority: parsed.Priority,
				Deadline: parsed.Deadline,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s [%s %s]\n", t.Title, t.World.Level(), t.Priority)
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var world, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print missions, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := game.Filter{Search: search}
			if world != "" {
				w, err := model.ParseWorld(world)
				if err != nil {
					return err
				}
				filter.World = w
				filter.ByWorld = true
			}
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			u, err := a.requireUser()
			if err != nil {
				return err
			}
			tasks, err := a.client.ListTasks(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			visible := game.Visible(tasks, filter)
			out := cmd.OutOrStdout()
			if len(visible) == 0 {
				fmt.Fprintln(out, "NO MISSIONS ACTIVE")
				return nil
			}
			for _, t := range visible {
				box := "[ ]"
				if t.Completed {
					box = "[x]"
				}
				line := fmt.Sprintf("%s %-6s %-4s %s", box, t.Priority, t.World.Level(), t.Title)
				if t.Deadline != nil {
					line += " due:" + t.Deadline.Format(commands.DeadlineLayout)
				}
				fmt.Fprintln(out, line)
			}
			p := game.Compute(tasks, a.cfg.PointsPerTask)
			fmt.Fprintf(out, "score %06d  coins %02d  badges %d\n", p.Score, p.Completed, p.Badges)
			return nil
		},
	}
	cmd.Flags().StringVar(&world, "world", "", "only missions in this world (overworld, castle, pipe)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title filter")
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF scorecard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			u, err := a.requireUser()
			if err != nil {
				return err
			}
			tasks, err := a.client.ListTasks(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			sc := report.NewScorecard(u.Email, model.Saga(a.cfg.Saga), tasks, a.cfg.PointsPerTask, time.Now())
			if err := report.WritePDF(f, sc); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scorecard written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "scorecard.pdf", "output file")
	return cmd
}
