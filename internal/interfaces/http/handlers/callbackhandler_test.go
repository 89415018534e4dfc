package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/momogate/internal/application/payment/usecases"
	"github.com/orris-inc/momogate/internal/interfaces/http/handlers/testutil"
)

func newCallbackHandler() *CallbackHandler {
	log := testutil.TestLogger()
	return NewCallbackHandler(usecases.NewHandleCallbackUseCase(log), log)
}

func TestCallbackHandler_HandleCallback(t *testing.T) {
	tests := []struct {
		name        string
		body        interface{}
		wantStatus  int
		wantOutcome usecases.CallbackOutcome
	}{
		{
			name:        "completed deposit",
			body:        map[string]any{"depositId": "d1", "status": "COMPLETED", "amount": "100"},
			wantStatus:  http.StatusOK,
			wantOutcome: usecases.CallbackCompleted,
		},
		{
			name:        "failed payout",
			body:        map[string]any{"payoutId": "p1", "status": "FAILED", "failureReason": map[string]string{"failureCode": "PAYER_LIMIT_REACHED"}},
			wantStatus:  http.StatusOK,
			wantOutcome: usecases.CallbackFailed,
		},
		{
			name:        "unknown status is acknowledged",
			body:        map[string]any{"refundId": "r1", "status": "SOMETHING_NEW"},
			wantStatus:  http.StatusOK,
			wantOutcome: usecases.CallbackOther,
		},
		{
			name:       "missing status",
			body:       map[string]any{"depositId": "d1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"status":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := newCallbackHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutil.NewTestContext(http.MethodPost, "/callbacks", tt.body)

			h.HandleCallback(c)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			if tt.wantStatus != http.StatusOK {
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				return
			}

			assert.True(t, resp.Success)
			var result usecases.CallbackResult
			require.NoError(t, json.Unmarshal(resp.Data, &result))
			assert.Equal(t, tt.wantOutcome, result.Outcome)
		})
	}
}
