package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "account-console/credentials"

// CredentialMetrics counts signing-in panel operations by operation, credential type and outcome.
type CredentialMetrics struct {
	ops metric.Int64Counter
}

// NewCredentialMetrics registers the counters on provider. A nil provider yields a recorder that drops samples.
func NewCredentialMetrics(provider metric.MeterProvider) (*CredentialMetrics, error) {
	if provider == nil {
		return &CredentialMetrics{}, nil
	}
	ops, err := provider.Meter(meterName).Int64Counter(
		"console.credential.operations",
		metric.WithDescription("Signing-in panel operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}
	return &CredentialMetrics{ops: ops}, nil
}

// Record adds one sample. op is e.g. "move", credType the credential type id, outcome "ok" or a status code name.
func (m *CredentialMetrics) Record(ctx context.Context, op, credType, outcome string) {
	if m == nil || m.ops == nil {
		return
	}
	m.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("credential_type", credType),
		attribute.String("outcome", outcome),
	))
}
