package internal

import (
	"chat-courier/domain"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

// Keyspaces written by the repositories package.
var Keyspaces = []string{"msg:", "dlv:", "inbox:", "inboxseq:", "inboxpos:", "seq:", "dedup:"}

type InspectRow struct {
	Key    string
	Kind   string
	Detail string
}

// Scan reads up to limit entries under prefix. A limit <= 0 reads them all.
func Scan(db *badger.DB, codec domain.Codec, prefix string, limit int) ([]InspectRow, error) {
	var rows []InspectRow
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(rows) >= limit {
				return nil
			}
			item := it.Item()
			key := string(item.KeyCopy(nil))
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			rows = append(rows, describe(codec, key, value))
		}
		return nil
	})
	return rows, err
}

func describe(codec domain.Codec, key string, value []byte) InspectRow {
	row := InspectRow{Key: key, Kind: strings.SplitN(key, ":", 2)[0]}
	switch row.Kind {
	case "msg":
		message, err := codec.Unmarshal(value)
		if err != nil {
			row.Detail = "Error: " + err.Error()
			return row
		}
		seq := "-"
		if message.SequenceNumber != nil {
			seq = strconv.FormatInt(*message.SequenceNumber, 10)
		}
		row.Detail = fmt.Sprintf("%s %s->%s seq=%s", message.State, message.SenderID, message.ReceiverID, seq)
	case "seq", "inboxseq", "inboxpos":
		if len(value) == 8 {
			row.Detail = strconv.FormatUint(binary.BigEndian.Uint64(value), 10)
		}
	default:
		row.Detail = string(value)
	}
	return row
}

// RenderTable prints rows the way the inspect tool does.
func RenderTable(w io.Writer, rows []InspectRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Kind", "Detail"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	for _, row := range rows {
		table.Append([]string{row.Key, row.Kind, row.Detail})
	}
	table.Render()
}

// InspectHandler serves a keyspace dump as plain text.
// Query parameters: prefix (default "msg:") and limit (default 100).
func InspectHandler(db *badger.DB, codec domain.Codec) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "msg:"
		}
		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		rows, err := Scan(db, codec, prefix, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		RenderTable(w, rows)
	})
}
