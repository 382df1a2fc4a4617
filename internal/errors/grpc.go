package errors

import (
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) > 0 {
		details, detailErr := structpb.NewStruct(normalizeMeta(customErr.Meta))
		if detailErr != nil {
			slog.Warn("dropping error metadata", "code", customErr.Code, "error", detailErr)
			return st.Err()
		}
		if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
			st = withDetails
		}
	}

	return st.Err()
}

// FromGRPCError converts a gRPC status error back into an *Error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		if meta, ok := detail.(*structpb.Struct); ok {
			customErr.Meta = meta.AsMap()
			break
		}
	}

	return customErr
}

// GRPCStatus returns the gRPC status for any error
func GRPCStatus(err error) *status.Status {
	st, _ := status.FromError(ToGRPCError(err))
	return st
}

// normalizeMeta rewrites values structpb cannot hold directly
func normalizeMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		switch typed := v.(type) {
		case []string:
			list := make([]any, len(typed))
			for i, s := range typed {
				list[i] = s
			}
			out[k] = list
		case map[string][]string:
			fields := make(map[string]any, len(typed))
			for field, msgs := range typed {
				list := make([]any, len(msgs))
				for i, s := range msgs {
					list[i] = s
				}
				fields[field] = list
			}
			out[k] = fields
		default:
			out[k] = v
		}
	}
	return out
}
