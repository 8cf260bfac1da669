// Command combatlog-history browses and prunes the local encounter history
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"combatlog/internal/platform/config"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"
	"combatlog/internal/services/history/domain"
	historymod "combatlog/internal/services/history/module"
	"combatlog/internal/services/history/service"
)

type command struct {
	dates  bool
	date   string
	key    string
	remove string
}

func main() {
	l := logger.Get()

	var cmd command
	fs := flag.NewFlagSet("combatlog-history", flag.ExitOnError)
	fs.BoolVar(&cmd.dates, "dates", false, "list recorded days")
	fs.StringVar(&cmd.date, "date", "", "list encounters for day YYYY-MM-DD")
	fs.StringVar(&cmd.key, "key", "", "print the encounter with this hex key as JSON")
	fs.StringVar(&cmd.remove, "remove", "", "delete the encounter with this hex key")
	_ = fs.Parse(os.Args[1:])

	ctx := context.Background()
	opts := historymod.FromConfig(config.New().Prefix("COMBATLOG_"))
	eng, err := service.Open(ctx, opts.Engine(), *l)
	if err != nil {
		l.Fatal().Err(err).Str("dir", opts.Dir).Bool("corrupt", perr.IsCorrupt(err)).Msg("open history failed")
	}
	defer func() { _ = eng.Close(ctx) }()

	if err := run(ctx, eng, cmd, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			os.Exit(2)
		}
		l.Debug().Err(err).Stringer("kind", perr.KindOf(err)).Msg("history command failed")
		fmt.Fprintf(os.Stderr, "%s error: %s\n", perr.KindOf(err), perr.SummaryLine(err))
		_ = eng.Close(ctx)
		os.Exit(1)
	}
}

var errUsage = errors.New("one of -dates, -date, -key or -remove is required")

// run executes exactly one command against eng and writes its output to w
func run(ctx context.Context, eng *service.Engine, cmd command, w io.Writer) error {
	q := service.NewQuery(eng)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	switch {
	case cmd.dates:
		days, err := q.Dates(ctx)
		if err != nil {
			return err
		}
		for _, d := range days {
			fmt.Fprintf(w, "%s\t%s\t%d\n", d.ISODate, d.Label, d.EncounterCount)
		}
		return nil

	case cmd.date != "":
		items, err := q.Encounters(ctx, cmd.date)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", it.Key, it.TimeLabel, it.DisplayTitle)
		}
		return nil

	case cmd.key != "":
		key, err := decodeKey(cmd.key)
		if err != nil {
			return err
		}
		rec, err := q.Encounter(ctx, key)
		if err != nil {
			return err
		}
		return enc.Encode(rec)

	case cmd.remove != "":
		key, err := decodeKey(cmd.remove)
		if err != nil {
			return err
		}
		if err := eng.Remove(ctx, key); err != nil {
			return err
		}
		fmt.Fprintf(w, "removed %s\n", domain.HexKey(key))
		return nil
	}
	return errUsage
}

func decodeKey(s string) ([]byte, error) {
	var k domain.HexKey
	if err := k.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return k, nil
}
