package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"campusview/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (app *application) loginCommand() *cobra.Command {
	var form session.Form

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.session.LoggedIn() {
				fmt.Fprintf(app.out, "Already logged in as %s.\n", app.session.Username())
				return nil
			}
			if err := app.session.ChooseLogin(); err != nil {
				return err
			}

			if form.Username == "" {
				form.Username = app.prompt("Username: ")
			}
			if form.Password == "" {
				form.Password = app.readPassword()
			}
			app.session.Fill(form)

			if err := app.session.Login(cmd.Context()); err != nil {
				return err
			}
			return app.printProfile(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (app *application) registerCommand() *cobra.Command {
	var form session.Form

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with your university email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.session.LoggedIn() {
				return fmt.Errorf("log out before registering a new account")
			}
			if err := app.session.ChooseRegister(); err != nil {
				return err
			}

			if form.Password == "" {
				form.Password = app.readPassword()
			}
			app.session.Fill(form)

			if err := app.session.Register(cmd.Context()); err != nil {
				return err
			}
			return app.printProfile(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "your full name")
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "university email address")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (app *application) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Logged out.")
			return nil
		},
	}
}

func (app *application) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.session.LoggedIn() {
				fmt.Fprintln(app.out, "Not logged in. Use `campusview login` or `campusview register`.")
				return nil
			}
			return app.printProfile(cmd.Context())
		},
	}
}

func (app *application) printProfile(ctx context.Context) error {
	u := app.session.Profile()
	if u == nil {
		var err error
		if u, err = app.session.LoadProfile(ctx); err != nil {
			return err
		}
	}

	if app.flags.json {
		return writeJSON(app.out, u)
	}
	tw := newTable(app.out)
	fmt.Fprintf(tw, "Name:\t%s\n", u.FullName)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Reviews:\t%d\n", len(u.ReviewList))
	return tw.Flush()
}

func (app *application) prompt(label string) string {
	fmt.Fprint(app.errOut, label)
	line, _ := app.lines.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword reads without echo when stdin is a terminal.
func (app *application) readPassword() string {
	if f, ok := app.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(app.errOut, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(app.errOut)
		if err != nil {
			app.logger.Warnw("failed to read password", "error", err)
			return ""
		}
		return string(b)
	}
	return app.prompt("Password: ")
}
