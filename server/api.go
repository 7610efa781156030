package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/pipeline"
	"github.com/bilalwebs/AQIMC-Encryption-System/server/metrics"
	"github.com/bilalwebs/AQIMC-Encryption-System/utils"
)

// Operation label values for the request metrics.
const (
	operationEncrypt = "encrypt"
	operationDecrypt = "decrypt"
	operationTest    = "test"
)

// EncryptRequest is the POST /encrypt body.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
	Key1      string `json:"key1"`
	Key2      string `json:"key2"`
	Key3      string `json:"key3"`
	Key4      string `json:"key4"`
}

// DecryptRequest is the POST /decrypt body.
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
	Key1       string `json:"key1"`
	Key2       string `json:"key2"`
	Key3       string `json:"key3"`
	Key4       string `json:"key4"`
}

// Step is one rendered pipeline stage inside a response.
type Step struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Description string `json:"description"`
}

type EncryptResponse struct {
	Success           bool            `json:"success"`
	EncryptedText     string          `json:"encrypted_text"`
	Steps             map[string]Step `json:"steps"`
	OriginalPlaintext string          `json:"original_plaintext"`
}

type DecryptResponse struct {
	Success            bool            `json:"success"`
	DecryptedText      string          `json:"decrypted_text"`
	Steps              map[string]Step `json:"steps"`
	OriginalCiphertext string          `json:"original_ciphertext"`
	Warnings           []string        `json:"warnings,omitempty"`
}

type TestResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TestPlaintext string `json:"test_plaintext"`
	Encrypted     string `json:"encrypted"`
	Decrypted     string `json:"decrypted"`
	Match         bool   `json:"match"`
}

type HomeResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	// The root pattern catches every path without a handler.
	if r.URL.Path != "/" {
		writeJSONError(logger, w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeJSONError(logger, w, http.StatusMethodNotAllowed, "method not allowed, use GET")
		return
	}

	writeJSON(logger, w, http.StatusOK, HomeResponse{
		Message: "AQIMC Encryption System API",
		Endpoints: map[string]string{
			"encrypt": "/encrypt (POST)",
			"decrypt": "/decrypt (POST)",
			"test":    "/test (GET)",
			"health":  "/health (GET)",
		},
	})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	startTime := time.Now()
	defer func() {
		s.metrics.RequestLatency.WithLabelValues(operationEncrypt).Observe(time.Since(startTime).Seconds())
	}()

	if r.Method != http.MethodPost {
		s.reject(logger, w, operationEncrypt, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var req EncryptRequest
	if ok := s.decodeRequest(logger, w, r, operationEncrypt, &req); !ok {
		return
	}

	plaintext := strings.TrimSpace(req.Plaintext)
	keys := aqimc.Keys{
		Key1: strings.TrimSpace(req.Key1),
		Key2: strings.TrimSpace(req.Key2),
		Key3: strings.TrimSpace(req.Key3),
		Key4: strings.TrimSpace(req.Key4),
	}

	if err := validateTextInput(plaintext); err != nil {
		s.reject(logger, w, operationEncrypt, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateKeys(keys); err != nil {
		s.reject(logger, w, operationEncrypt, http.StatusBadRequest, err.Error())
		return
	}

	logger.With(keyFingerprints(keys)...).Info("Encrypting text",
		zap.Int("plaintext_length", len(plaintext)),
	)

	result, err := pipeline.Encrypt(plaintext, keys)
	if err != nil {
		logger.Warn("Encryption failed", zap.Error(err))
		s.metrics.RequestCount.WithLabelValues(operationEncrypt, metrics.OutcomeError).Inc()
		writeJSONError(logger, w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.RequestCount.WithLabelValues(operationEncrypt, metrics.OutcomeSuccess).Inc()
	writeJSON(logger, w, http.StatusOK, EncryptResponse{
		Success:           true,
		EncryptedText:     result.Ciphertext,
		Steps:             renderSteps(result.Trace),
		OriginalPlaintext: result.Plaintext,
	})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	startTime := time.Now()
	defer func() {
		s.metrics.RequestLatency.WithLabelValues(operationDecrypt).Observe(time.Since(startTime).Seconds())
	}()

	if r.Method != http.MethodPost {
		s.reject(logger, w, operationDecrypt, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var req DecryptRequest
	if ok := s.decodeRequest(logger, w, r, operationDecrypt, &req); !ok {
		return
	}

	ciphertext := strings.TrimSpace(req.Ciphertext)
	keys := aqimc.Keys{
		Key1: strings.TrimSpace(req.Key1),
		Key2: strings.TrimSpace(req.Key2),
		Key3: strings.TrimSpace(req.Key3),
		Key4: strings.TrimSpace(req.Key4),
	}

	if err := validateTextInput(ciphertext); err != nil {
		s.reject(logger, w, operationDecrypt, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateKeys(keys); err != nil {
		s.reject(logger, w, operationDecrypt, http.StatusBadRequest, err.Error())
		return
	}

	logger.With(keyFingerprints(keys)...).Info("Decrypting text",
		zap.Int("ciphertext_length", len(ciphertext)),
	)

	result, err := pipeline.Decrypt(ciphertext, keys)
	if err != nil {
		logger.Warn("Decryption failed", zap.Error(err))
		s.metrics.RequestCount.WithLabelValues(operationDecrypt, metrics.OutcomeError).Inc()
		writeJSONError(logger, w, http.StatusBadRequest, err.Error())
		return
	}

	if len(result.Warnings) > 0 {
		logger.Warn("Decryption degraded", zap.Strings("warnings", result.Warnings))
		s.metrics.DecryptDegradedCount.Inc()
	}

	s.metrics.RequestCount.WithLabelValues(operationDecrypt, metrics.OutcomeSuccess).Inc()
	writeJSON(logger, w, http.StatusOK, DecryptResponse{
		Success:            true,
		DecryptedText:      result.Plaintext,
		Steps:              renderSteps(result.Trace),
		OriginalCiphertext: result.Ciphertext,
		Warnings:           result.Warnings,
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	startTime := time.Now()
	defer func() {
		s.metrics.RequestLatency.WithLabelValues(operationTest).Observe(time.Since(startTime).Seconds())
	}()

	if r.Method != http.MethodGet {
		s.reject(logger, w, operationTest, http.StatusMethodNotAllowed, "method not allowed, use GET")
		return
	}

	result, err := pipeline.SelfTest()
	if err != nil {
		logger.Error("Self test failed", zap.Error(err))
		s.metrics.RequestCount.WithLabelValues(operationTest, metrics.OutcomeError).Inc()
		writeJSONError(logger, w, http.StatusInternalServerError, fmt.Sprintf("Test failed: %s", err))
		return
	}

	s.metrics.RequestCount.WithLabelValues(operationTest, metrics.OutcomeSuccess).Inc()
	writeJSON(logger, w, http.StatusOK, TestResponse{
		Success:       true,
		Message:       "System is working correctly",
		TestPlaintext: result.Plaintext,
		Encrypted:     result.Encrypted,
		Decrypted:     result.Decrypted,
		Match:         result.Match,
	})
}

// decodeRequest reads the JSON body into dst, enforcing the body size cap.
// It writes the error response itself and reports whether decoding worked.
func (s *Server) decodeRequest(logger *zap.Logger, w http.ResponseWriter, r *http.Request, operation string, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("Could not decode request body", zap.Error(err))
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.reject(logger, w, operation, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.reject(logger, w, operation, http.StatusBadRequest, "No JSON data provided")
		return false
	}
	return true
}

// reject counts a rejected request and writes the error response.
func (s *Server) reject(logger *zap.Logger, w http.ResponseWriter, operation string, statusCode int, errorMsg string) {
	s.metrics.RequestCount.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
	writeJSONError(logger, w, statusCode, errorMsg)
}

// validateTextInput applies the boundary checks for plaintext or ciphertext.
func validateTextInput(text string) error {
	if err := utils.CheckLength(len(text), utils.MaxTextLength); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	return core.ValidateText(text)
}

// validateKeys checks each key in order, so the error names the first
// offending key.
func validateKeys(keys aqimc.Keys) error {
	named := []struct {
		name  string
		value string
	}{
		{"key1", keys.Key1},
		{"key2", keys.Key2},
		{"key3", keys.Key3},
		{"key4", keys.Key4},
	}
	for _, k := range named {
		if err := utils.CheckLength(len(k.value), utils.MaxKeyLength); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
		if err := core.ValidateKey(k.value); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return nil
}

// keyFingerprints renders stable key identifiers for logging. Raw key
// material never reaches the logs.
func keyFingerprints(keys aqimc.Keys) []zap.Field {
	return []zap.Field{
		zap.String("key1_fingerprint", utils.KeyFingerprint(keys.Key1)),
		zap.String("key2_fingerprint", utils.KeyFingerprint(keys.Key2)),
		zap.String("key3_fingerprint", utils.KeyFingerprint(keys.Key3)),
		zap.String("key4_fingerprint", utils.KeyFingerprint(keys.Key4)),
	}
}

// renderSteps converts the ordered trace into a JSON object keyed by
// layer name.
func renderSteps(trace aqimc.Trace) map[string]Step {
	steps := make(map[string]Step, len(trace))
	for _, e := range trace {
		steps[e.Layer] = Step{
			Input:       e.Input,
			Output:      e.Output,
			Description: e.Description,
		}
	}
	return steps
}

func writeJSONError(logger *zap.Logger, w http.ResponseWriter, httpStatusCode int, errorMsg string) {
	resp, err := json.Marshal(ErrorResponse{Success: false, Error: errorMsg})
	if err != nil {
		msg := "Error marshalling JSON error response"
		logger.Error(msg, zap.Error(err))
		resp = []byte(msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)

	if _, err = w.Write(resp); err != nil {
		logger.Error("Error writing error response", zap.Error(err))
	}
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, statusCode int, payload any) {
	resp, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal response", zap.Error(err))
		writeJSONError(logger, w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err = w.Write(resp); err != nil {
		logger.Error("Error writing response", zap.Error(err))
	}
}
