package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/Dosada05/swiss-tournament/utils"
)

// env holds what a command needs once the store is open.
type env struct {
	conn        *sql.DB
	store       *repositories.Store
	logger      *slog.Logger
	players     services.PlayerService
	matches     services.MatchService
	standings   services.StandingsService
	tournaments services.TournamentService
}

type ctxKey struct{}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "swissctl",
		Usage:     "manage a Swiss-system tournament from the command line",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-driver",
				Usage:   "postgres or sqlite3",
				Value:   db.DriverPostgres,
				EnvVars: []string{"DATABASE_DRIVER"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "DSN of the tournament store",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log service activity to stderr",
			},
		},
		Before: openStore,
		After:  closeStore,
		Commands: []*cli.Command{
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for ORGANIZER_PASSWORD_HASH",
				ArgsUsage: "PASSWORD",
				Action:    hashPassword,
			},
			{
				Name:   "migrate",
				Usage:  "create the players and matches tables",
				Action: migrate,
			},
			{
				Name:      "register",
				Usage:     "register a player",
				ArgsUsage: "NAME",
				Action:    registerPlayer,
			},
			{
				Name:      "report",
				Usage:     "record that WINNER beat LOSER",
				ArgsUsage: "WINNER LOSER",
				Action:    reportMatch,
			},
			{
				Name:   "players",
				Usage:  "list players in registration order",
				Action: listPlayers,
			},
			{
				Name:   "count",
				Usage:  "print the number of registered players",
				Action: countPlayers,
			},
			{
				Name:   "standings",
				Usage:  "print the current standings",
				Action: printStandings,
			},
			{
				Name:   "pairings",
				Usage:  "print the next round pairings",
				Action: printPairings,
			},
			{
				Name:   "delete-matches",
				Usage:  "delete every recorded match",
				Action: deleteMatches,
			},
			{
				Name:   "delete-players",
				Usage:  "delete every player; fails while matches are recorded",
				Action: deletePlayers,
			},
			{
				Name:   "reset",
				Usage:  "delete all matches and players",
				Action: reset,
			},
			{
				Name:  "export",
				Usage: "export the standings to S3 or a local directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "comma separated list of json, csv, yaml, xlsx",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "export-dir",
						Usage:   "directory used when S3 is not configured",
						Value:   "exports",
						EnvVars: []string{"EXPORT_DIR"},
					},
				},
				Action: export,
			},
		},
	}
}

// commandsWithoutStore run without a database connection.
var commandsWithoutStore = map[string]bool{
	"hash-password": true,
	"help":          true,
	"h":             true,
}

func openStore(c *cli.Context) error {
	if c.NArg() == 0 || commandsWithoutStore[c.Args().First()] {
		return nil
	}
	if c.String("database-url") == "" {
		return cli.Exit("--database-url or DATABASE_URL is required", 2)
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	driver := c.String("database-driver")
	conn, err := db.Connect(driver, c.String("database-url"), 5*time.Second)
	if err != nil {
		return err
	}

	store := repositories.NewStore(conn, driver)
	e := &env{
		conn:        conn,
		store:       store,
		logger:      logger,
		players:     services.NewPlayerService(store, nil, nil, logger),
		matches:     services.NewMatchService(store, nil, nil, logger),
		standings:   services.NewStandingsService(store, brackets.NewSwissGenerator(), nil, logger),
		tournaments: services.NewTournamentService(store, nil, logger),
	}
	c.Context = context.WithValue(c.Context, ctxKey{}, e)
	return nil
}

func closeStore(c *cli.Context) error {
	if e, ok := c.Context.Value(ctxKey{}).(*env); ok {
		return e.conn.Close()
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	return c.Context.Value(ctxKey{}).(*env)
}

func newTable(c *cli.Context) *tabwriter.Writer {
	return tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
}

func hashPassword(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: swissctl hash-password PASSWORD", 2)
	}
	hash, err := utils.HashPassword(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}

func migrate(c *cli.Context) error {
	e := envFrom(c)
	if err := db.Migrate(c.Context, e.conn, e.store.Driver); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "schema is up to date")
	return nil
}

func registerPlayer(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: swissctl register NAME", 2)
	}
	p, err := envFrom(c).players.Register(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "registered %s as player %d\n", p.Name, p.ID)
	return nil
}

func reportMatch(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: swissctl report WINNER LOSER", 2)
	}
	winner, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("winner must be a player id: %v", err), 2)
	}
	loser, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("loser must be a player id: %v", err), 2)
	}

	m, err := envFrom(c).matches.ReportMatch(c.Context, winner, loser)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "recorded match %d: %d beat %d\n", m.ID, m.WinnerID, m.LoserID)
	return nil
}

func listPlayers(c *cli.Context) error {
	players, err := envFrom(c).players.List(c.Context)
	if err != nil {
		return err
	}
	w := newTable(c)
	fmt.Fprintln(w, "ID\tNAME\tREGISTERED")
	for _, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}

func countPlayers(c *cli.Context) error {
	n, err := envFrom(c).players.Count(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, n)
	return nil
}

func printStandings(c *cli.Context) error {
	standings, err := envFrom(c).standings.Standings(c.Context)
	if err != nil {
		return err
	}
	w := newTable(c)
	fmt.Fprintln(w, "RANK\tID\tNAME\tWINS\tMATCHES")
	for i, s := range standings {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\n", i+1, s.ID, s.Name, s.Wins, s.Matches)
	}
	return w.Flush()
}

func printPairings(c *cli.Context) error {
	plan, err := envFrom(c).standings.NextRound(c.Context)
	if err != nil {
		if errors.Is(err, services.ErrOddPlayerCount) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}

	rematch := make(map[models.Pairing]bool, len(plan.Rematches))
	for _, p := range plan.Rematches {
		rematch[p] = true
	}

	w := newTable(c)
	fmt.Fprintln(w, "TABLE\tPLAYER 1\tPLAYER 2\t")
	for i, p := range plan.Pairings {
		note := ""
		if rematch[p] {
			note = "rematch"
		}
		fmt.Fprintf(w, "%d\t%d %s\t%d %s\t%s\n", i+1, p.ID1, p.Name1, p.ID2, p.Name2, note)
	}
	return w.Flush()
}

func deleteMatches(c *cli.Context) error {
	res, err := envFrom(c).tournaments.DeleteMatches(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d matches\n", res.MatchesDeleted)
	return nil
}

func deletePlayers(c *cli.Context) error {
	res, err := envFrom(c).tournaments.DeletePlayers(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d players\n", res.PlayersDeleted)
	return nil
}

func reset(c *cli.Context) error {
	res, err := envFrom(c).tournaments.Reset(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d matches and %d players\n", res.MatchesDeleted, res.PlayersDeleted)
	return nil
}

func export(c *cli.Context) error {
	formats, err := services.ParseExportFormats(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	s3, err := config.LoadS3()
	if err != nil {
		return err
	}
	var uploader storage.FileUploader
	if s3.Enabled() {
		uploader, err = storage.NewS3Uploader(c.Context, storage.S3UploaderConfig{
			Endpoint:        s3.Endpoint,
			Region:          s3.Region,
			AccessKeyID:     s3.AccessKeyID,
			SecretAccessKey: s3.SecretAccessKey,
			BucketName:      s3.Bucket,
			PublicBaseURL:   s3.PublicBaseURL,
			UsePathStyle:    s3.UsePathStyle,
		})
	} else {
		uploader, err = storage.NewLocalUploader(c.String("export-dir"), s3.PublicBaseURL)
	}
	if err != nil {
		return err
	}

	e := envFrom(c)
	artifacts, err := services.NewExportService(e.store, uploader, nil, e.logger).Export(c.Context, formats)
	if err != nil {
		return err
	}
	w := newTable(c)
	fmt.Fprintln(w, "FORMAT\tLOCATION")
	for _, a := range artifacts {
		fmt.Fprintf(w, "%s\t%s\n", a.Format, a.Location)
	}
	return w.Flush()
}
