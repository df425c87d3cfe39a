package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/holding"
	"github.com/nainya/shelfkey/pkg/shelfindex"
)

// ComputeKeysRequest asks for the keys of one or more call numbers.
type ComputeKeysRequest struct {
	CallNumbers []string `json:"call_numbers"`
	Scheme      string   `json:"scheme"`
	Serial      bool     `json:"serial,omitempty"`
	Volume      string   `json:"volume,omitempty"`
}

type ComputeKeysResponse struct {
	Keys []callnumber.Keys `json:"keys"`
}

type IndexRecordRequest struct {
	Record holding.RecordSpec `json:"record"`
}

type IndexRecordResponse struct {
	RecordID string `json:"record_id"`
	Entries  int    `json:"entries"`
}

type RemoveRecordRequest struct {
	RecordID string `json:"record_id"`
}

type RemoveRecordResponse struct {
	RecordID string `json:"record_id"`
}

// BrowseRequest mirrors shelfindex.BrowseRequest. Direction is "forward"
// (the default) or "backward".
type BrowseRequest struct {
	Library    string `json:"library"`
	ShelfKey   string `json:"shelfkey,omitempty"`
	CallNumber string `json:"call_number,omitempty"`
	Scheme     string `json:"scheme,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Distinct   bool   `json:"distinct,omitempty"`
}

type BrowseResponse struct {
	Entries []shelfindex.Entry `json:"entries"`
}

type HealthResponse struct {
	Healthy       bool   `json:"healthy"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type StatsResponse struct {
	Entries         int              `json:"entries"`
	Records         int              `json:"records"`
	MemoHits        int64            `json:"memo_hits"`
	MemoMisses      int64            `json:"memo_misses"`
	OperationCounts map[string]int64 `json:"operation_counts"`
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("convert %T: %w", v, err)
	}
	return s, nil
}

// fromStruct fills v from s. Unknown fields are rejected.
func fromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
