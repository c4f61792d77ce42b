package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: 50 * time.Millisecond,
		RetryInterval:  10 * time.Millisecond,
		MaxWait:        20 * time.Millisecond,
		PingTimeout:    10 * time.Millisecond,
		DialTimeout:    10 * time.Millisecond,
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConnectOptions)
		want   string
	}{
		{"empty addr", func(o *ConnectOptions) { o.Addr = "" }, "address"},
		{"zero connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, "ConnectTimeout"},
		{"zero retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, "RetryInterval"},
		{"zero max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, "MaxWait"},
		{"zero ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, "PingTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}

	if err := validOptions().validate(); err != nil {
		t.Errorf("validate() on valid options = %v", err)
	}
}

func TestNewUnreachable(t *testing.T) {
	client, err := New(validOptions(), logger.NewNop())
	if err == nil {
		_ = client.Close()
		t.Fatal("New() against an unreachable address should fail")
	}
	if !strings.Contains(err.Error(), "redis unavailable") {
		t.Errorf("New() error = %v", err)
	}
}
