package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
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
			message:  "layout not found",
			expected: "NOT_FOUND: layout not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "room count must be positive",
			expected: "INVALID_ARGUMENT: room count must be positive",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.NotFound("template not found").WithMeta("template_id", "room_a")
	wrapped := errors.Wrap(base, "failed to spawn room")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to spawn room", wrapped.Message)
	s.Equal("room_a", wrapped.Meta["template_id"])
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	base := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(base, "failed to save layout")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal(base, wrapped.Unwrap())
	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCode(fmt.Errorf("boom"), errors.CodeUnavailable, "scene unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.True(errors.IsUnavailable(wrapped))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeCanceled, errors.GetCode(errors.Wrap(errors.Canceled("stopped"), "outer")))
	s.Equal(errors.CodeUnavailable, errors.GetCode(errors.Unavailablef("scene %s down", "a")))
	s.Equal("scene a down", errors.Unavailablef("scene %s down", "a").Message)
	s.Equal(codes.Canceled, errors.CodeCanceled.GRPCCode())
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Equal("", errors.GetMessage(nil))
	s.Equal("layout not found", errors.GetMessage(errors.Wrap(errors.NotFound("x"), "layout not found")))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("layout not found").WithMeta("layout_id", "layout_1")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("layout not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsNotFound(back))

	var customErr *errors.Error
	s.Require().True(errors.As(back, &customErr))
	s.Equal("layout_1", customErr.Meta["layout_id"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPlainError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
	s.Nil(errors.ToGRPCError(nil))
}
