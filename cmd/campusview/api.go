package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusview/internal/apiclient"
	"campusview/internal/auth"
	"campusview/internal/domain/storage"
	"campusview/internal/handles"
	"campusview/internal/media"
	"campusview/internal/notifications"
	"campusview/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type application struct {
	config   config
	logger   *zap.SugaredLogger
	store    *storage.Container
	tokens   auth.TokenStore
	session  *session.Session
	notifier notifications.Notifier
	uploader media.Uploader
	handles  *handles.Codec
	now      func() time.Time

	in     io.Reader
	lines  *bufio.Reader
	out    io.Writer
	errOut io.Writer

	flags globalFlags
}

type globalFlags struct {
	json  bool
	page  int
	limit int
}

type config struct {
	apiURL      string
	storagePath string
	httpTimeout time.Duration
	emailDomain string
	env         string
	logLevel    string
	push        pushConfig
	media       mediaConfig
	handleSalt  string
}

type pushConfig struct {
	deviceToken string
}

type mediaConfig struct {
	cloudinaryURL string
}

func newApplication(cfg config, logger *zap.SugaredLogger, in io.Reader, out, errOut io.Writer) (*application, error) {
	tokens := auth.NewFileTokenStore(cfg.storagePath)

	api := apiclient.New(cfg.apiURL,
		apiclient.WithTimeout(cfg.httpTimeout),
		apiclient.WithTokenSource(tokens),
		apiclient.WithLogger(logger),
	)
	store := storage.NewContainer(api)

	notifier := notifications.Fanout{notifications.NewConsole(errOut)}
	if cfg.push.deviceToken != "" {
		push := notifications.NewExpoAdapter(nil)
		notifier = append(notifier, notifications.NewExpoNotifier(push, cfg.push.deviceToken))
	}

	var uploader media.Uploader
	if cfg.media.cloudinaryURL != "" {
		cld, err := media.NewCloudinaryUploader(cfg.media.cloudinaryURL, media.ClubFolder)
		if err != nil {
			return nil, err
		}
		uploader = cld
	}

	codec, err := handles.New(cfg.handleSalt)
	if err != nil {
		return nil, err
	}

	sess := session.New(session.Config{EmailDomain: cfg.emailDomain},
		store.Users, tokens, auth.NewJWTInspector(), notifier, logger)

	return &application{
		config:   cfg,
		logger:   logger,
		store:    store,
		tokens:   tokens,
		session:  sess,
		notifier: notifier,
		uploader: uploader,
		handles:  codec,
		now:      time.Now,
		in:       in,
		lines:    bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
	}, nil
}

func (app *application) mount() *cobra.Command {
	root := &cobra.Command{
		Use:           "campusview",
		Short:         "Browse campus dining and clubs, and review them",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session.Restore(); err != nil {
				app.logger.Warnw("could not restore session", "error", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&app.flags.json, "json", false, "print JSON instead of tables")
	pf.IntVar(&app.flags.page, "page", 1, "page of results to show")
	pf.IntVar(&app.flags.limit, "limit", 15, "results per page (max 30)")

	root.AddCommand(
		app.diningCommand(),
		app.clubsCommand(),
		app.reviewsCommand(),
		app.loginCommand(),
		app.registerCommand(),
		app.logoutCommand(),
		app.profileCommand(),
	)
	return root
}

func (app *application) run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := app.mount()
	root.SetArgs(args)
	root.SetIn(app.in)
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	app.logger.Debugw("starting", "version", version, "api", app.store.Host(), "env", app.config.env)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(app.errOut, "Error:", apiclient.Reason(err))
		return err
	}
	return nil
}
