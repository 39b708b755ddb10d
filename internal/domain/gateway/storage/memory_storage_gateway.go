package storage

import (
	"context"
	"strconv"
	"sync"

	"go-todo/internal/domain/model"
)

type MemoryGateway struct {
	mutex  sync.RWMutex
	values map[string]string
}

var _ Gateway = (*MemoryGateway)(nil)

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: make(map[string]string)}
}

func (gateway *MemoryGateway) ReadString(_ context.Context, key string) (string, bool, error) {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	value, ok := gateway.values[key]
	return value, ok, nil
}

func (gateway *MemoryGateway) WriteString(_ context.Context, key string, value string) error {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()

	gateway.values[key] = value
	return nil
}

func (gateway *MemoryGateway) Delete(_ context.Context, key string) error {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()

	delete(gateway.values, key)
	return nil
}

func (gateway *MemoryGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	return model.ComponentUp(map[string]string{
		"backend": "memory",
		"keys":    strconv.Itoa(len(gateway.values)),
	})
}
