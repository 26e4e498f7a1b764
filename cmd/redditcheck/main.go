// Command redditcheck verifies a single Reddit username with the configured
// API credentials, e.g.
//
//	go run ./cmd/redditcheck -env-file .env spez
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/config"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/reddit"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	envFile := flag.String("env-file", ".env", "Optional .env file loaded before the config")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: redditcheck [-config file] [-env-file file] <username>")
		os.Exit(2)
	}
	username := flag.Arg(0)

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	v := reddit.NewVerifier(cfg.Reddit, nil)
	defer v.Close()

	ok, err := v.Verify(context.Background(), username)
	var cerr *reddit.CredentialsMissingError
	if errors.As(err, &cerr) {
		log.Fatal(cerr)
	}

	if ok {
		fmt.Printf("u/%s exists\n", username)
		return
	}
	fmt.Printf("u/%s was not found (or Reddit could not be reached)\n", username)
	os.Exit(1)
}
