package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newClassifier() *ErrorClassifier {
	return NewErrorClassifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClassify(t *testing.T) {
	ec := newClassifier()

	testCases := []struct {
		name      string
		err       error
		wantClass ErrorClass
		wantCode  codes.Code
	}{
		{name: "not found", err: fmt.Errorf("%w: person", ErrNotFound), wantClass: ClassNotFound, wantCode: codes.NotFound},
		{name: "invalid input", err: fmt.Errorf("%w: bad email", ErrInvalidInput), wantClass: ClassValidation, wantCode: codes.InvalidArgument},
		{name: "authentication", err: NewAuthenticationError("invalid credentials", "a@b.com"), wantClass: ClassAuthentication, wantCode: codes.Unauthenticated},
		{name: "authorization", err: NewAuthorizationError("permission denied"), wantClass: ClassAuthorization, wantCode: codes.PermissionDenied},
		{name: "conflict", err: fmt.Errorf("%w: already reviewed", ErrConflict), wantClass: ClassConflict, wantCode: codes.AlreadyExists},
		{name: "storage", err: fmt.Errorf("%w: s3 put", ErrStorageFailure), wantClass: ClassExternal, wantCode: codes.Internal},
		{name: "unknown", err: fmt.Errorf("something odd"), wantClass: ClassInternal, wantCode: codes.Internal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classified := ec.Classify(tc.err, "test_op")
			assert.Equal(t, tc.wantClass, classified.Class)

			sanitized := ec.LogAndSanitize(context.Background(), classified)
			st, ok := status.FromError(sanitized)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, st.Code())
		})
	}
}

func TestLogAndSanitize_HidesInternalDetail(t *testing.T) {
	ec := newClassifier()

	// Denials for a missing person and a missing permission must be
	// indistinguishable on the wire.
	notFound := ec.LogAndSanitize(context.Background(),
		ec.Classify(NewAuthorizationError("person not found"), "op"))
	denied := ec.LogAndSanitize(context.Background(),
		ec.Classify(NewAuthorizationError("permission denied"), "op"))

	assert.Equal(t, notFound.Error(), denied.Error())

	st, _ := status.FromError(notFound)
	assert.NotContains(t, st.Message(), "person not found")
}
