package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bookloader/internal/author"
	"bookloader/internal/book"
	"bookloader/internal/config"
	"bookloader/internal/dump"
	"bookloader/internal/ingest"
)

type mode int

const (
	modeAll mode = iota
	modeAuthors
	modeWorks
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loader",
		Short: "Load Open Library author and works dumps into the book store",
		Long: `loader reads line-delimited Open Library dump files and writes one row per
line: authors into author_by_id, works into book_by_id with author names
resolved from the authors already loaded.

Settings come from the environment (.env and .env.local are read first);
flags override them.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.String("authors", "", "Path of the author dump (AUTHOR_DUMP_PATH)")
	f.String("works", "", "Path of the works dump (WORKS_DUMP_PATH)")
	f.String("backend", "", "Store backend: postgres, dynamodb or memory (STORE_BACKEND)")
	f.Bool("strict", false, "Abort a file at its first bad line (STRICT)")
	f.Int("write-rps", 0, "Maximum store writes per second, 0 for no limit (WRITE_RPS)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Load authors, then works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, modeAll)
		},
	}
	runCmd.Flags().Bool("skip-authors", false, "Skip the author load when authors are already in the store (SKIP_AUTHORS)")

	authorsCmd := &cobra.Command{
		Use:   "authors",
		Short: "Load the author dump only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, modeAuthors)
		},
	}

	worksCmd := &cobra.Command{
		Use:   "works",
		Short: "Load the works dump only, against authors already in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, modeWorks)
		},
	}

	root.AddCommand(runCmd, authorsCmd, worksCmd)
	return root
}

// resolveConfig reads the environment and applies any flags the user set.
func resolveConfig(cmd *cobra.Command, m mode) (config.Config, error) {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("authors") {
		cfg.AuthorDumpPath, _ = flags.GetString("authors")
	}
	if flags.Changed("works") {
		cfg.WorksDumpPath, _ = flags.GetString("works")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("write-rps") {
		cfg.WriteRPS, _ = flags.GetInt("write-rps")
	}
	if flags.Changed("skip-authors") {
		cfg.SkipAuthors, _ = flags.GetBool("skip-authors")
	}

	switch m {
	case modeWorks:
		cfg.SkipAuthors = true
	case modeAuthors:
		cfg.SkipAuthors = false
	}
	return cfg, cfg.Validate()
}

func execute(cmd *cobra.Command, m mode) error {
	cfg, err := resolveConfig(cmd, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()
	logger.Printf("using %s store", cfg.Backend)

	svc := newService(cfg, st, m, logger)
	if _, err := svc.Run(ctx); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func newService(cfg config.Config, st *stores, m mode, logger *log.Logger) *ingest.Service {
	authorLoader := author.NewLoader(st.authors,
		dump.NewProcessor("author", cfg.Strict, cfg.WriteRPS, logger), logger)
	bookLoader := book.NewLoader(st.books, st.authors,
		dump.NewProcessor("book", cfg.Strict, cfg.WriteRPS, logger), logger)

	return ingest.NewService(authorLoader, bookLoader, st.runs, ingest.Config{
		AuthorsPath: cfg.AuthorDumpPath,
		WorksPath:   cfg.WorksDumpPath,
		SkipAuthors: cfg.SkipAuthors,
		SkipWorks:   m == modeAuthors,
	}, logger)
}
