// Package server implements the gRPC ShelfKey service
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nainya/shelfkey/internal/logger"
	"github.com/nainya/shelfkey/internal/metrics"
	"github.com/nainya/shelfkey/internal/version"
	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/holding"
	"github.com/nainya/shelfkey/pkg/journal"
	"github.com/nainya/shelfkey/pkg/shelfindex"
)

// MaxCallNumbers bounds a single ComputeKeys request.
const MaxCallNumbers = 1000

// Server implements ShelfKeyServiceServer
type Server struct {
	engine  *callnumber.Engine
	index   *shelfindex.Index
	metrics *metrics.Metrics
	log     *logger.Logger

	// journal, when set, records every index change. Appends run under the
	// index write lock, so the journal keeps the order changes were applied.
	journal *journal.Journal

	startTime time.Time

	mu       sync.Mutex
	opCounts map[string]int64
}

var _ ShelfKeyServiceServer = (*Server)(nil)

// ServerOption configures a Server
type ServerOption func(*Server)

// WithJournal records index changes in j
func WithJournal(j *journal.Journal) ServerOption {
	return func(s *Server) { s.journal = j }
}

// NewServer creates a new gRPC server instance
func NewServer(engine *callnumber.Engine, index *shelfindex.Index, m *metrics.Metrics, log *logger.Logger, opts ...ServerOption) *Server {
	s := &Server{
		engine:    engine,
		index:     index,
		metrics:   m,
		log:       log,
		startTime: time.Now(),
		opCounts:  make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) count(op string) {
	s.mu.Lock()
	s.opCounts[op]++
	s.mu.Unlock()
}

// ========== Keys ==========

func (s *Server) ComputeKeys(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.count("ComputeKeys")

	var req ComputeKeysRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if len(req.CallNumbers) == 0 {
		return nil, status.Error(codes.InvalidArgument, "call_numbers is required")
	}
	if len(req.CallNumbers) > MaxCallNumbers {
		return nil, status.Errorf(codes.InvalidArgument, "at most %d call numbers per request", MaxCallNumbers)
	}
	scheme, err := parseScheme(req.Scheme)
	if err != nil {
		return nil, err
	}

	resp := ComputeKeysResponse{Keys: make([]callnumber.Keys, 0, len(req.CallNumbers))}
	memo := s.index.Memo()
	for _, raw := range req.CallNumbers {
		if err := ctx.Err(); err != nil {
			return nil, toStatus(err)
		}
		var k callnumber.Keys
		if req.Volume == "" {
			k = memo.Keys(raw, scheme, req.Serial)
		} else {
			k = s.engine.Compute(raw, scheme, req.Serial, req.Volume)
		}
		s.metrics.RecordKeys(string(scheme))
		resp.Keys = append(resp.Keys, k)
	}
	return encode(resp)
}

// ========== Index ==========

func (s *Server) IndexRecord(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.count("IndexRecord")

	var req IndexRecordRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if len(req.Record.Items) == 0 {
		return nil, status.Error(codes.InvalidArgument, "record.items is required")
	}
	for i, item := range req.Record.Items {
		if strings.TrimSpace(item.Library) == "" {
			return nil, status.Errorf(codes.InvalidArgument, "record.items[%d].library is required", i)
		}
		if _, err := parseScheme(item.Scheme); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "record.items[%d]: %v", i, status.Convert(err).Message())
		}
	}

	rec := holding.NewRecord(req.Record)

	n, err := s.index.AddThen(ctx, rec, func() error {
		return s.record(journal.OpPut, rec.ID, rec.Spec())
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(IndexRecordResponse{RecordID: rec.ID, Entries: n})
}

func (s *Server) RemoveRecord(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.count("RemoveRecord")

	var req RemoveRecordRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if req.RecordID == "" {
		return nil, status.Error(codes.InvalidArgument, "record_id is required")
	}

	err := s.index.RemoveThen(ctx, req.RecordID, func() error {
		return s.record(journal.OpDelete, req.RecordID, nil)
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(RemoveRecordResponse{RecordID: req.RecordID})
}

func (s *Server) Browse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.count("Browse")

	var req BrowseRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	br := shelfindex.BrowseRequest{
		Library:    req.Library,
		ShelfKey:   req.ShelfKey,
		CallNumber: req.CallNumber,
		Limit:      req.Limit,
		Distinct:   req.Distinct,
	}
	switch strings.ToLower(req.Direction) {
	case "", "forward":
		br.Direction = shelfindex.Forward
	case "backward":
		br.Direction = shelfindex.Backward
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown direction %q", req.Direction)
	}
	if req.CallNumber != "" {
		scheme, err := parseScheme(req.Scheme)
		if err != nil {
			return nil, err
		}
		br.Scheme = scheme
	}

	entries, err := s.index.Browse(ctx, br)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(BrowseResponse{Entries: entries})
}

// ========== Health & Status ==========

func (s *Server) Health(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return encode(HealthResponse{
		Healthy:       true,
		Version:       version.GitRelease,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

func (s *Server) Stats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	hits, misses := s.index.Memo().Stats()

	s.mu.Lock()
	counts := make(map[string]int64, len(s.opCounts))
	for k, v := range s.opCounts {
		counts[k] = v
	}
	s.mu.Unlock()

	return encode(StatsResponse{
		Entries:         s.index.Len(),
		Records:         s.index.Records(),
		MemoHits:        hits,
		MemoMisses:      misses,
		OperationCounts: counts,
	})
}

// record appends a change to the journal. It runs as the commit step of an
// index change.
func (s *Server) record(op journal.Op, recordID string, spec any) error {
	if s.journal == nil {
		return nil
	}
	var value []byte
	if spec != nil {
		var err error
		if value, err = json.Marshal(spec); err != nil {
			return status.Errorf(codes.Internal, "failed to encode record: %v", err)
		}
	}
	if _, err := s.journal.Append(op, []byte(recordID), value); err != nil {
		s.log.Error("journal append failed").Str("record_id", recordID).Err(err).Send()
		return status.Errorf(codes.Internal, "failed to journal record %s: %v", recordID, err)
	}
	return nil
}

func parseScheme(name string) (callnumber.Scheme, error) {
	if strings.TrimSpace(name) == "" {
		return "", status.Error(codes.InvalidArgument, "scheme is required")
	}
	scheme, ok := callnumber.ParseScheme(name)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "unknown scheme %q", name)
	}
	return scheme, nil
}

func encode(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// toStatus maps index and context errors to gRPC status codes.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, shelfindex.ErrRecordNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, shelfindex.ErrInvalidRecord), errors.Is(err, shelfindex.ErrInvalidBrowse):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
}
