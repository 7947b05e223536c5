package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	idsvc "github.com/rzbill/flake/internal/services/ids"
	"github.com/rzbill/flake/pkg/id"
)

type idsSvc struct {
	svc *idsvc.Service
}

func (s *idsSvc) NextID(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	v, err := s.svc.Next(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(v.Uint64()), nil
}

func (s *idsSvc) NextIDs(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	n := int(req.GetValue())
	if n == 0 {
		n = 1
	}
	ids, err := s.svc.NextBatch(ctx, n)
	if err != nil {
		return nil, toStatus(err)
	}
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(ids))}
	for _, v := range ids {
		out.Values = append(out.Values, structpb.NewStringValue(v.String()))
	}
	return out, nil
}

func (s *idsSvc) Decode(_ context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	if req.GetValue()>>63 != 0 {
		return nil, status.Error(codes.InvalidArgument, "id has the sign bit set")
	}
	v := id.ID(req.GetValue())
	p := s.svc.Decode(v)
	out, err := structpb.NewStruct(map[string]any{
		"id":                v.String(),
		"timestampOffsetMs": p.TimestampOffsetMs,
		"timeMs":            p.TimeMs,
		"datacenterId":      p.DatacenterID,
		"workerId":          p.WorkerID,
		"sequence":          p.Sequence,
		"time":              p.Time().UTC().Format(timeLayout),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func toStatus(err error) error {
	switch {
	case errors.Is(err, idsvc.ErrInvalidCount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, id.ErrClockRegression), errors.Is(err, id.ErrTimestampOverflow):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
