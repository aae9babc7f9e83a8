package main

import (
	"chat-courier/domain"
	"chat-courier/internal"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan, or \"all\" for every keyspace")
	codecName := flag.String("codec", "json", "Codec the server writes messages with")
	limit := flag.Int("limit", 0, "Maximum rows per keyspace, 0 for all")
	flag.Parse()

	codec, err := domain.CodecByName(*codecName)
	if err != nil {
		log.Fatal(err)
	}

	// BypassLockGuard lets the inspector read while the server holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	prefixes := []string{*prefix}
	if *prefix == "all" {
		prefixes = internal.Keyspaces
	}
	for _, p := range prefixes {
		rows, err := internal.Scan(db, codec, p, *limit)
		if err != nil {
			log.Fatalf("scan %s: %v", p, err)
		}
		fmt.Printf("\n%s (%d)\n", p, len(rows))
		internal.RenderTable(os.Stdout, rows)
	}
}
