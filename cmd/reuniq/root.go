package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fractalqb/reuniq"
)

type rootCommand struct {
	cobra.Command
	cfgFile string
}

func newRootCmd() *rootCommand {
	root := &rootCommand{
		Command: cobra.Command{
			Use:   "reuniq [flags] <pattern> [file...]",
			Short: "Collapse runs of lines matching a pattern to their first line",
			Long: `Reads lines from the files, or stdin if no file is given, and writes
them to stdout. Of each run of consecutive lines that match the regular
expression pattern only the first line is written. Each file is filtered
on its own. Lines that do not match are always written.

The pattern can also be set with -e, REUNIQ_PATTERN or the config file.
Then all arguments are files.`,
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}
	root.RunE = root.run
	flags := root.Flags()
	flags.StringVarP(&root.cfgFile, "config", "c", "",
		"Read settings from config file")
	flags.StringP("regexp", "e", "",
		"Set the pattern, all arguments are input files")
	flags.StringP("output", "o", "",
		"Write to file instead of stdout")
	flags.String("log-level", "warn",
		"Set log level: debug, info, warn or error")
	flags.Bool("stats", false,
		"Print line counts of each input to stderr")
	flags.Bool("runs", false,
		"Print the collapsed runs of each input to stderr")
	return root
}

func (root *rootCommand) run(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd.Flags(), root.cfgFile)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	pattern, files := cfg.Pattern, args
	if pattern == "" && !cmd.Flags().Changed("regexp") {
		if len(args) == 0 {
			return fmt.Errorf("missing pattern")
		}
		pattern, files = args[0], args[1:]
	}
	rgx, err := reuniq.Compile(pattern)
	if err != nil {
		return err
	}
	log.Debug("compiled pattern", zap.Stringer("regexp", rgx))

	// All inputs are opened before the output is created, a missing input
	// must not truncate it.
	inputs := make([]*os.File, 0, len(files))
	defer func() {
		for _, in := range inputs {
			in.Close()
		}
	}()
	for _, name := range files {
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	out := cmd.OutOrStdout()
	if cfg.Output != "" {
		var f *os.File
		if f, err = os.Create(cfg.Output); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	wr := bufio.NewWriter(out)
	defer func() {
		if ferr := wr.Flush(); err == nil {
			err = ferr
		}
	}()

	p := pass{
		cfg: &cfg,
		log: log,
		out: wr,
		rep: cmd.ErrOrStderr(),
		u:   reuniq.Uniq{Matcher: rgx},
	}
	if len(inputs) == 0 {
		return p.filter("stdin", cmd.InOrStdin())
	}
	for _, in := range inputs {
		if err = p.filter(in.Name(), in); err != nil {
			return err
		}
	}
	return nil
}

// pass runs the filter over one input at a time.
type pass struct {
	cfg *config
	log *zap.Logger
	out io.Writer
	rep io.Writer
	u   reuniq.Uniq
}

func (p *pass) filter(name string, rd io.Reader) error {
	log := p.log.With(zap.String("input", name))
	p.u.OnSuppress = nil
	if log.Core().Enabled(zapcore.DebugLevel) {
		p.u.OnSuppress = func(n int, l string) {
			log.Debug("suppress", zap.Int("line", n), zap.String("text", l))
		}
	}
	p.u.Runs = nil
	if p.cfg.Runs {
		p.u.Runs = new(reuniq.RunLog)
	}
	stats, err := p.u.Text(p.out, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Info("filtered",
		zap.Int("read", stats.Read),
		zap.Int("written", stats.Written),
		zap.Int("runs", stats.Runs),
	)
	if p.cfg.Stats {
		fmt.Fprintf(p.rep, "%s: %s\n", name, stats)
	}
	if p.u.Runs != nil {
		for r := p.u.Runs.Pop(); r != nil; r = p.u.Runs.Pop() {
			if r.Len > 1 {
				fmt.Fprintf(p.rep, "%s:%s\n", name, r)
			}
		}
	}
	return nil
}
