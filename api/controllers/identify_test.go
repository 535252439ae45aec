package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liquorcabinet/backend/internal/identify"
)

type stubVisionClient struct {
	response string
	err      error
}

func (s stubVisionClient) IdentifyImage(ctx context.Context, mediaType, base64Data, prompt string) (string, error) {
	return s.response, s.err
}

func TestIdentifyBottleSuccess(t *testing.T) {
	svc, err := identify.NewService(stubVisionClient{
		response: `{"brand":"Maker's Mark","productName":"Bourbon","category":"whisky","confidence":"high"}`,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	body := []byte(`{"image":"data:image/jpeg;base64,aGVsbG8="}`)
	resp := httptest.NewRecorder()
	IdentifyBottle(svc, nil).ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/identify", body))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Bottle  struct {
			Brand      string `json:"brand"`
			Category   string `json:"category"`
			Confidence string `json:"confidence"`
		} `json:"bottle"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Bottle.Brand != "Maker's Mark" || envelope.Bottle.Confidence != "high" {
		t.Fatalf("unexpected bottle %+v", envelope.Bottle)
	}
}

func TestIdentifyBottleMissingImage(t *testing.T) {
	svc, err := identify.NewService(stubVisionClient{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	body := []byte(`{}`)
	resp := httptest.NewRecorder()
	IdentifyBottle(svc, nil).ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/identify", body))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestIdentifyBottleUnsupportedType(t *testing.T) {
	svc, err := identify.NewService(stubVisionClient{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	body := []byte(`{"image":"data:image/tiff;base64,aGVsbG8="}`)
	resp := httptest.NewRecorder()
	IdentifyBottle(svc, nil).ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/identify", body))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error != "Unsupported image type" {
		t.Fatalf("unexpected error %q", envelope.Error)
	}
}
