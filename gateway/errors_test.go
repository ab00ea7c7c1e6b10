package gateway_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-price-dashboard/gateway"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// TestClassify tests the pure status-to-kind mapping
func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		transportErr error
		wantKind     gateway.Kind
	}{
		{name: "401 is unauthorized", statusCode: http.StatusUnauthorized, wantKind: gateway.KindUnauthorized},
		{name: "500 is a server fault", statusCode: http.StatusInternalServerError, wantKind: gateway.KindServerFault},
		{name: "502 is a server fault", statusCode: http.StatusBadGateway, wantKind: gateway.KindServerFault},
		{name: "503 is a server fault", statusCode: http.StatusServiceUnavailable, wantKind: gateway.KindServerFault},
		{name: "400 is a client fault", statusCode: http.StatusBadRequest, wantKind: gateway.KindClientFault},
		{name: "403 is a client fault", statusCode: http.StatusForbidden, wantKind: gateway.KindClientFault},
		{name: "404 is a client fault", statusCode: http.StatusNotFound, wantKind: gateway.KindClientFault},
		{name: "422 is a client fault", statusCode: http.StatusUnprocessableEntity, wantKind: gateway.KindClientFault},
		{name: "429 is a client fault", statusCode: http.StatusTooManyRequests, wantKind: gateway.KindClientFault},
		{name: "transport error wins", statusCode: 0, transportErr: io.ErrUnexpectedEOF, wantKind: gateway.KindTransport},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := gateway.Classify(tc.statusCode, "", tc.transportErr)

			require.Equal(t, tc.wantKind, apiErr.Kind)
			require.Equal(t, tc.statusCode, apiErr.StatusCode)
		})
	}
}

// TestClassify_KeepsDetail tests that the backend detail survives classification
func TestClassify_KeepsDetail(t *testing.T) {
	apiErr := gateway.Classify(http.StatusNotFound, "Store not found", nil)

	require.Equal(t, "Store not found", apiErr.Detail)
	require.Contains(t, apiErr.Error(), "Store not found")
	require.Contains(t, apiErr.Error(), "404")
}

// TestKindOf tests kind extraction through error wrapping
func TestKindOf(t *testing.T) {
	apiErr := gateway.Classify(http.StatusUnauthorized, "", nil)
	wrapped := errors.Wrap(apiErr, "fetching profile")

	require.Equal(t, gateway.KindUnauthorized, gateway.KindOf(wrapped))
	require.Equal(t, gateway.Kind(""), gateway.KindOf(errors.New("unrelated")))
	require.Equal(t, gateway.Kind(""), gateway.KindOf(nil))
}

// TestAPIError_Unwrap tests that the transport cause stays reachable
func TestAPIError_Unwrap(t *testing.T) {
	apiErr := gateway.Classify(0, "", io.ErrUnexpectedEOF)

	require.ErrorIs(t, apiErr, io.ErrUnexpectedEOF)
	require.Contains(t, apiErr.Error(), "transport")
}
