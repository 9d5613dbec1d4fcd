package main

import (
	"context"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	. "github.com/jimiolaniyan/socialmedia"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	accounts, messages := buildRepositories(cfg)

	accountSvc := NewAccountService(accounts)
	messageSvc := NewMessageService(messages, accounts)

	router := NewRouter(accountSvc, messageSvc)

	log.WithFields(log.Fields{"addr": cfg.Addr, "backend": cfg.StorageBackend}).
		Info("server started")
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}

func buildRepositories(cfg Config) (AccountRepository, MessageRepository) {
	switch cfg.StorageBackend {
	case "memory":
		return NewAccountRepository(), NewMessageRepository()

	case "sqlite":
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		return NewGormAccountRepository(db), NewGormMessageRepository(db)

	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal(err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			log.Fatal(err)
		}

		db := client.Database(cfg.MongoDatabase)
		if err := EnsureAccountIndexes(ctx, db); err != nil {
			log.Fatal(err)
		}
		return NewMongoAccountRepository(db), NewMongoMessageRepository(db)

	default:
		log.Fatalf("unknown storage backend: %s", cfg.StorageBackend)
		return nil, nil
	}
}
