// Command seed initializes the content data directory with the default
// document for every simple content collection, so a fresh deployment serves
// well-formed shapes before the admin writes anything.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"portfolio/internal/config"
	"portfolio/internal/filestore"
	"portfolio/pkg/logger"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: no .env file found\n")
		}
	}
}

func main() {
	force := flag.Bool("force", false, "Reset every content file to its default shape")
	flag.Parse()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store := filestore.New(cfg.Content.DataDir, log)

	for _, name := range filestore.Names() {
		var doc interface{}
		if *force {
			doc, _ = filestore.Default(name)
		} else {
			// Read falls back to the default, so writing back what Read
			// returns keeps existing well-formed files and repairs missing
			// or corrupt ones.
			doc, err = store.Read(name)
			if err != nil {
				log.Error().Err(err).Str("collection", name).Msg("read failed")
				continue
			}
		}
		if err := store.Write(name, doc); err != nil {
			log.Error().Err(err).Str("collection", name).Msg("write failed")
			continue
		}
		log.Info().Str("collection", name).Bool("reset", *force).Msg("seeded")
	}

	log.Info().Str("dir", cfg.Content.DataDir).Msg("content directory seeded")
}
