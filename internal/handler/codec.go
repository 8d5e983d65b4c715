package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// decode request struct into dst through its json form
func decode(in *structpb.Struct, dst interface{}) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err = json.Unmarshal(b, dst); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// encode v into a response struct, v must marshal to a json object
func encode(v interface{}) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := &structpb.Struct{}
	if err = protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// toStatus map domain errors to grpc codes
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, model.ErrInvalidQuantityOrPrice), errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidRequest), errors.Is(err, model.ErrInvalidMethod),
		errors.Is(err, model.ErrInvalidTolerance):
		code = codes.InvalidArgument
	case errors.Is(err, model.ErrInsufficientHoldings), errors.Is(err, model.ErrInsufficientFunds):
		code = codes.FailedPrecondition
	case errors.Is(err, model.ErrNoSuchPosition):
		code = codes.NotFound
	case errors.Is(err, model.ErrConcurrentModification):
		code = codes.Aborted
	case errors.Is(err, model.ErrDataUnavailable):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	return status.Error(code, err.Error())
}

// LoggingInterceptor log method, code and latency of every unary call
func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logrus.WithFields(logrus.Fields{
		"Method":  info.FullMethod,
		"Code":    status.Code(err).String(),
		"Latency": time.Since(start),
	}).Debug("grpc call")
	return resp, err
}
