package srv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingService struct {
	name  string
	order *[]string
	err   error
}

func (r *recordingService) Start(ctx context.Context) error { return nil }

func (r *recordingService) Shutdown(ctx context.Context) error {
	*r.order = append(*r.order, r.name)
	return r.err
}

func TestStopServices_ReverseOrder(t *testing.T) {
	var order []string
	services := []Service{
		&recordingService{name: "db", order: &order},
		&recordingService{name: "worker", order: &order, err: errors.New("boom")},
		&recordingService{name: "http", order: &order},
	}

	StopServices(context.Background(), services)

	assert.Equal(t, []string{"http", "worker", "db"}, order)
}

func TestShutdownServices_WaitsForCancel(t *testing.T) {
	var order []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ShutdownServices(ctx, []Service{&recordingService{name: "only", order: &order}})

	assert.Equal(t, []string{"only"}, order)
}

func TestNewCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	assert.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	assert.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)

	assert.NoError(t, NewCleanup(nil).Shutdown(context.Background()))
}
