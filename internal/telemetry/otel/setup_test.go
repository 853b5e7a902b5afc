package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		endpoint     string
		insecure     bool
		wantHostPort string
		wantInsecure bool
		wantErr      bool
	}{
		{"bare host port", "localhost:4317", false, "localhost:4317", true, false},
		{"http", "http://collector:4317", false, "collector:4317", true, false},
		{"https uses tls", "https://collector:4317", false, "collector:4317", false, false},
		{"https insecure override", "https://collector:4317", true, "collector:4317", true, false},
		{"path dropped", "http://localhost:4317/v1/traces", false, "localhost:4317", true, false},
		{"missing host", "http://", false, "", false, true},
		{"malformed", "http://[invalid", false, "", false, true},
		{"empty", "  ", false, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.endpoint, tt.insecure)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEndpoint(%q) = %+v, want error", tt.endpoint, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEndpoint(%q): %v", tt.endpoint, err)
			}
			if got.HostPort != tt.wantHostPort || got.Insecure != tt.wantInsecure {
				t.Errorf("ParseEndpoint(%q) = %+v, want {%s %v}", tt.endpoint, got, tt.wantHostPort, tt.wantInsecure)
			}
		})
	}
}

func TestNewProviders_EmptyEndpoint(t *testing.T) {
	ctx := context.Background()
	providers, err := NewProviders(ctx, "", "account-console-test", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if providers.TracerProvider == nil || providers.MeterProvider == nil || providers.LoggerProvider == nil {
		t.Fatalf("providers must be non-nil: %+v", providers)
	}
	if err := providers.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "http://", "svc", false); err == nil {
		t.Fatal("expected error for endpoint without host")
	}
}

func TestSetGlobal(t *testing.T) {
	providers, err := NewProviders(context.Background(), "", "svc", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	oldTP, oldMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(oldTP)
		otel.SetMeterProvider(oldMP)
	})
	providers.SetGlobal()
	if otel.GetTracerProvider() != providers.TracerProvider {
		t.Error("global TracerProvider not set")
	}
	if otel.GetMeterProvider() != providers.MeterProvider {
		t.Error("global MeterProvider not set")
	}
}
