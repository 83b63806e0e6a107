package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_PlainStruct(t *testing.T) {
	quota := int64(0)
	in := &RegisterRequest{Username: "alice@example.com", Quota: &quota}

	b, err := Codec{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice@example.com","password":"","name":"","domain":"","quota":0}`, string(b))

	var out RegisterRequest
	require.NoError(t, Codec{}.Unmarshal(b, &out))
	require.NotNil(t, out.Quota)
	assert.Equal(t, int64(0), *out.Quota)
	assert.Nil(t, out.Active)
}

func TestCodec_ProtoMessage(t *testing.T) {
	in := &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}

	b, err := Codec{}.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), "SERVING")

	out := &healthpb.HealthCheckResponse{}
	require.NoError(t, Codec{}.Unmarshal(b, out))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, out.GetStatus())
}

func TestCodec_Errors(t *testing.T) {
	_, err := Codec{}.Marshal(make(chan int))
	require.Error(t, err)

	var out LoginRequest
	require.Error(t, Codec{}.Unmarshal([]byte("{"), &out))
}
