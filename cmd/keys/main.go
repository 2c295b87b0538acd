package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"alkulous-relay/internal/config"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/internal/service"
	"alkulous-relay/pkg/database"
	"alkulous-relay/pkg/events"
	pktNats "alkulous-relay/pkg/nats"

	"github.com/fatih/color"
)

const usage = `usage: keys <command>

commands:
  list             show every API key, newest first
  create <name>    issue a new key
  revoke <id>      delete a key by id`

// discardPublisher is used when NATS is not reachable.
type discardPublisher struct{}

func (discardPublisher) Publish(ctx context.Context, event events.Event) error { return nil }

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var publisher service.IPublisherService = discardPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			color.Yellow("NATS unavailable, key events will not be forwarded: %v", err)
		} else {
			defer natsPub.Close()
			publisher = natsPub
		}
	}

	keys := service.NewApiKeyService(unitofwork.NewRepositoryFactory(db), publisher, logger.NewNopLogger())
	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		err = list(ctx, keys)
	case "create":
		if len(os.Args) < 3 {
			color.Red("create needs a name")
			os.Exit(2)
		}
		err = create(ctx, keys, os.Args[2])
	case "revoke":
		if len(os.Args) < 3 {
			color.Red("revoke needs an id")
			os.Exit(2)
		}
		err = revoke(ctx, keys, os.Args[2])
	default:
		fmt.Println(usage)
		os.Exit(2)
	}

	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
}

func list(ctx context.Context, keys service.IApiKeyService) error {
	all, err := keys.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		color.Yellow("No API keys")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKEY\tCREATED")
	for _, k := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", k.Id, k.Name, k.Key, k.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func create(ctx context.Context, keys service.IApiKeyService, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	key, err := keys.Create(ctx, &dto.CreateApiKeyRequest{Name: name})
	if err != nil {
		return err
	}
	color.Green("Created key #%d for %s", key.Id, key.Name)
	fmt.Println(key.Key)
	return nil
}

func revoke(ctx context.Context, keys service.IApiKeyService, raw string) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", raw)
	}
	if err := keys.Delete(ctx, id); err != nil {
		return err
	}
	color.Green("Revoked key #%d", id)
	return nil
}
