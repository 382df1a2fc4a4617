package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "conversation not found",
			expected: "NOT_FOUND: conversation not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "conversation ID is required",
			expected: "INVALID_ARGUMENT: conversation ID is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load conversation")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to load conversation", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Equal("INTERNAL: failed to load conversation: connection refused", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("record not found").WithMeta("conversation_id", "conv-1")
	wrapped := errors.Wrapf(baseErr, "conversation %s", "conv-1")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("conversation conv-1", wrapped.Message)
	s.Assert().Equal("conv-1", errors.GetMeta(wrapped)["conversation_id"])
	s.Assert().True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCode(fmt.Errorf("dial tcp: timeout"), errors.CodeUnavailable, "store unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("store unavailable", wrapped.Message)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.Is(errors.NotFound("a"), errors.NotFound("b")))
	s.Assert().False(errors.Is(errors.NotFound("a"), errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCodeAndMessage() {
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(stdErr))
	s.Assert().Equal(errors.CodeFailedPrecondition, errors.GetCode(errors.FailedPrecondition("x")))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
	s.Assert().Equal("", errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.NotFound("conversation not found").WithMeta("conversation_id", "conv-1")

	st, ok := status.FromError(errors.ToGRPCError(err))
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("conversation not found", st.Message())

	back := errors.FromGRPCError(st.Err())
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Assert().Equal("conv-1", errors.GetMeta(back)["conversation_id"])
}

func (s *ErrorsTestSuite) TestGRPCConversionForeignErrors() {
	s.Assert().Nil(errors.ToGRPCError(nil))
	s.Assert().Equal(codes.Internal, status.Code(errors.ToGRPCError(fmt.Errorf("boom"))))

	already := status.Error(codes.Unavailable, "down")
	s.Assert().Equal(already, errors.ToGRPCError(already))

	s.Assert().Equal(codes.OK, errors.GRPCStatus(nil).Code())
	s.Assert().Equal(codes.InvalidArgument, errors.GRPCStatus(errors.InvalidArgument("bad")).Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeOK, codes.OK},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeUnimplemented, codes.Unimplemented},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeInternal, codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
			back := errors.FromGRPCError(status.Error(tc.expected, "x"))
			s.Assert().Equal(tc.code, errors.GetCode(back))
		})
	}
}
