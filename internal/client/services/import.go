package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"

	"github.com/dmitrijs2005/gophledger/internal/client/models"
	"github.com/dmitrijs2005/gophledger/internal/ledger"
)

const (
	msgBadJSON     = "JSON 파싱 실패"
	msgNotAnArray  = "형식이 올바르지 않습니다. (배열 아님)"
	msgMemoBadForm = "형식이 올바르지 않습니다."
)

type importRow struct {
	ID    string
	Entry models.NewEntry
}

func decodeArray(raw []byte) ([]any, string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, msgBadJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, msgBadJSON
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, ""
	}
	return arr, ""
}

func optionalString(obj map[string]any, key, fallback string) (string, bool) {
	v, present := obj[key]
	if !present || v == nil {
		return fallback, true
	}
	s, ok := v.(string)
	return s, ok
}

// parseLedgerRows checks every element before returning any of them. The
// second result is a user-facing message when the payload is rejected.
func parseLedgerRows(raw []byte) ([]importRow, string) {
	arr, msg := decodeArray(raw)
	if msg != "" {
		return nil, msg
	}
	if arr == nil {
		return nil, msgNotAnArray
	}

	rows := make([]importRow, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, msgStructure
		}

		id, ok := obj["id"].(string)
		if !ok {
			return nil, msgStructure
		}
		date, ok := obj["date"].(string)
		if !ok {
			return nil, msgStructure
		}

		kindRaw, present := obj["type"]
		if !present {
			kindRaw = obj["kind"]
		}
		kind, ok := kindRaw.(string)
		if !ok || !ledger.Kind(kind).Valid() {
			return nil, msgStructure
		}

		num, ok := obj["amount"].(json.Number)
		if !ok {
			return nil, msgStructure
		}
		amount, err := num.Int64()
		if err != nil {
			return nil, msgStructure
		}

		category, ok := optionalString(obj, "category", ledger.FallbackCategory)
		if !ok {
			return nil, msgStructure
		}
		if category == "" {
			category = ledger.FallbackCategory
		}
		memo, ok := optionalString(obj, "memo", "")
		if !ok {
			return nil, msgStructure
		}

		e := models.NewEntry{
			Date:     date,
			Kind:     ledger.Kind(kind),
			Category: category,
			Memo:     memo,
			Amount:   amount,
		}
		if err := e.Validate(); err != nil {
			return nil, msgStructure
		}
		rows = append(rows, importRow{ID: id, Entry: e})
	}
	return rows, ""
}

// oldestFirst orders rows by date ascending. Exports are newest first, so
// ties keep the reverse of the file order.
func oldestFirst(rows []importRow) []importRow {
	out := make([]importRow, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Entry.Date < out[j].Entry.Date
	})
	return out
}
