package network

import (
	"encoding/json"
	"testing"
)

func TestEncodeEnvelope(t *testing.T) {
	frame, err := EncodeEnvelope(EventError, ErrorPayload{Message: "Sala não encontrada"})
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	if env.Event != EventError {
		t.Errorf("event = %q, want %q", env.Event, EventError)
	}

	var payload ErrorPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("data is not an ErrorPayload: %v", err)
	}
	if payload.Message != "Sala não encontrada" {
		t.Errorf("message = %q", payload.Message)
	}
}

func TestEncodeEnvelopeNilPayload(t *testing.T) {
	frame, err := EncodeEnvelope("ping", nil)
	if err != nil {
		t.Fatalf("EncodeEnvelope: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatal(err)
	}
	if env.Event != "ping" {
		t.Errorf("event = %q, want ping", env.Event)
	}
}

func TestSubmitAnswerRequestDecoding(t *testing.T) {
	raw := []byte(`{"roomId":"r1","roundId":"q1","answer":"porém","responseTimeMs":4210}`)
	var req SubmitAnswerRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.RoomID != "r1" || req.RoundID != "q1" || req.Answer != "porém" || req.ResponseTimeMs != 4210 {
		t.Errorf("decoded %+v", req)
	}
}
