package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/flagx"
)

var knownFlags = []string{"-v", "-s", "-d", "-p", "-k", "-g", "-u", "-l"}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are looked at, so -c/-config and anything else pass through.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("recordkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Variant, "v", cfg.Variant, "record variant (projects|tasks)")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite|postgres|s3|memory)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.DatabaseDSN, "p", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.SlotKey, "k", cfg.SlotKey, "storage slot key")
	delayMS := fs.Int("g", int(cfg.GenerationDelay/time.Millisecond), "generation delay (in milliseconds)")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "display name")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}
	// -g only overrides the delay when given; a file value may be finer than 1ms.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "g" {
			cfg.GenerationDelay = time.Duration(*delayMS) * time.Millisecond
		}
	})
	return nil
}
