package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-equity/analysis"
	"github.com/lox/holdem-equity/equity"
	"github.com/lox/holdem-equity/poker"
)

type CLI struct {
	Ranges  []string `arg:"" help:"Participant ranges, one per argument (e.g. 'AhKh' 'QQ+,AKs')" required:"true"`
	Board   string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Dead    string   `short:"d" help:"Dead cards removed from the deck"`
	Exact   bool     `short:"e" help:"Enumerate every completion instead of sampling"`
	Mode    string   `help:"Computation mode" enum:"auto,exact,montecarlo" default:"auto"`
	Trials  int      `short:"t" help:"Number of Monte Carlo trials (0 uses the config value)"`
	Seed    *uint64  `help:"Random seed for reproducible results"`
	Workers int      `short:"w" help:"Worker pool size (0 uses the config value)"`
	Config  string   `short:"c" help:"HCL config file" default:"holdem-equity.hcl" type:"path"`
	Debug   bool     `help:"Enable debug logging"`
}

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	equityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem-equity"),
		kong.Description("Texas Hold'em equity calculator for hands and ranges."),
	)

	logger := setupLogger(cli.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cli, logger, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		kctx.Exit(1)
	}
}

// setupLogger configures zerolog with pretty console output
func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(ctx context.Context, cli CLI, logger zerolog.Logger, out io.Writer) error {
	cfg, err := equity.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	req, err := buildRequest(cli)
	if err != nil {
		return err
	}

	engine, err := equity.New(cfg, equity.WithLogger(logger))
	if err != nil {
		return err
	}

	res, err := engine.Compute(ctx, req)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("mode", res.Mode.String()).
		Int("workers", res.Workers).
		Int("chunks", res.Chunks).
		Msg("Request complete")

	return displayResults(out, cli.Ranges, req.Board, res)
}

func buildRequest(cli CLI) (equity.Request, error) {
	board, err := poker.ParseCardSet(cli.Board)
	if err != nil {
		return equity.Request{}, fmt.Errorf("board: %w", err)
	}
	dead, err := poker.ParseCardSet(cli.Dead)
	if err != nil {
		return equity.Request{}, fmt.Errorf("dead cards: %w", err)
	}

	mode, err := equity.ParseMode(cli.Mode)
	if err != nil {
		return equity.Request{}, err
	}
	if cli.Exact {
		mode = equity.Exact
	}

	participants := make([]*analysis.Range, 0, len(cli.Ranges))
	for i, text := range cli.Ranges {
		r, err := analysis.ParseRange(text, 0)
		if err != nil {
			return equity.Request{}, fmt.Errorf("range %d: %w", i+1, err)
		}
		participants = append(participants, r)
	}

	return equity.Request{
		Participants: participants,
		Board:        board,
		Dead:         dead,
		Mode:         mode,
		Trials:       cli.Trials,
		Seed:         cli.Seed,
		Workers:      cli.Workers,
	}, nil
}

func displayResults(out io.Writer, labels []string, board poker.CardSet, res *equity.Result) error {
	if !board.IsEmpty() {
		fmt.Fprintf(out, "%s\n", headerStyle.Render("board"))
		fmt.Fprintf(out, "%s\n\n", board)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("range"),
		headerStyle.Render("equity"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	for i, o := range res.Outcomes {
		equityText := fmt.Sprintf("%.2f%%", o.Equity*100)
		if res.Mode == equity.MonteCarlo {
			equityText += fmt.Sprintf(" ±%.2f", o.StdErr*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(labels[i]),
			equityStyle.Render(equityText),
			equityStyle.Render(fmt.Sprintf("%.2f%%", o.Win*100)),
			tieStyle.Render(fmt.Sprintf("%.2f%%", o.Tie*100)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	switch res.Mode {
	case equity.Exact:
		fmt.Fprintf(out, "exact: %d boards in %v\n", res.Branches, res.Elapsed.Truncate(time.Millisecond))
	default:
		fmt.Fprintf(out, "monte carlo: %d trials (seed %d) in %v\n", res.Branches, res.Seed, res.Elapsed.Truncate(time.Millisecond))
	}
	return nil
}
