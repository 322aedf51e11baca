package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/lox/solarscout/internal/api"
	"github.com/lox/solarscout/internal/nsrdb"
	"github.com/lox/solarscout/internal/solar"
)

var cli struct {
	APIKey  string `help:"NREL developer API key." env:"NREL_API_KEY" required:""`
	Email   string `help:"Contact email sent with NSRDB requests." env:"NREL_API_EMAIL" required:""`
	Port    string `help:"HTTP server port." env:"PORT" default:"8080"`
	BaseURL string `help:"NSRDB API base URL." env:"NSRDB_BASE_URL" default:"https://developer.nrel.gov"`
	Years   []int  `help:"Candidate years for the fixed-list strategies, most recent first."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("solarscout"),
		kong.Description("Solar resource assessment service backed by the NREL NSRDB."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	client := nsrdb.NewWithBaseURL(cli.BaseURL, cli.APIKey, cli.Email)
	assessor := solar.NewAssessor(client, client, cli.Years)
	server := api.NewServer(assessor, cli.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
