package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/koren-henrik/dxrelay/pkg/controller/jenkins"
	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/domain/model"
	"github.com/koren-henrik/dxrelay/pkg/utils/async"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body
const SignatureHeader = "X-Relay-Signature-256"

// maxNotificationSize bounds the accepted request body
const maxNotificationSize = 1 << 20

// NotificationProcessor processes one decoded run notification
type NotificationProcessor interface {
	Process(ctx context.Context, n *model.Notification) model.DeliveryOutcome
}

// RunHandler receives run-completed notifications from the CI host
type RunHandler struct {
	secret    string
	processor NotificationProcessor
	recorder  interfaces.NotificationRecorder
}

// NewRunHandler creates a new RunHandler. recorder may be nil.
func NewRunHandler(secret string, processor NotificationProcessor, recorder interfaces.NotificationRecorder) *RunHandler {
	return &RunHandler{
		secret:    secret,
		processor: processor,
		recorder:  recorder,
	}
}

func (h *RunHandler) record(result string) {
	if h.recorder != nil {
		h.recorder.RecordNotification(result)
	}
}

// Handle verifies and decodes a notification, then processes it in the
// background. The host gets 202 immediately so a slow or failing DX API
// never holds up the CI run.
func (h *RunHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNotificationSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Run notification too large", "limit", tooLarge.Limit)
			h.record("invalid")
			writeError(ctx, w, goerr.Wrap(err, "notification too large", goerr.V("limit", tooLarge.Limit)), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature
	signature := r.Header.Get(SignatureHeader)
	if !h.verifySignature(body, signature) {
		logger.Warn("Invalid notification signature")
		h.record("rejected")
		writeError(ctx, w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	run, err := jenkins.Decode(body)
	if err != nil {
		logger.Warn("Failed to decode run notification", "error", err)
		h.record("invalid")
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	n := jenkins.NewNotification(run)
	h.record("accepted")

	async.Dispatch(ctx, func(ctx context.Context) error {
		h.processor.Process(ctx, n)
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "accepted",
		"id":     n.ID,
	}); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// verifySignature verifies the notification signature
func (h *RunHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" || h.secret == "" {
		return false
	}

	// Accept the signature with or without the "sha256=" prefix
	signature = "sha256=" + strings.TrimPrefix(signature, "sha256=")

	return hmac.Equal([]byte(signature), []byte(Sign(h.secret, payload)))
}

// Sign returns the signature header value for payload, for use by clients
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
