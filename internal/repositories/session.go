package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
)

// SessionMemoryRepository keeps session values for the lifetime of the process.
type SessionMemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSessionMemoryRepository creates an empty repository.
func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{values: make(map[string]string)}
}

func (r *SessionMemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *SessionMemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *SessionMemoryRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// SessionFileRepository keeps session values in a single JSON object on disk.
// The file is removed once the last key is deleted.
type SessionFileRepository struct {
	mu   sync.Mutex
	path string
}

// NewSessionFileRepository creates a repository backed by path. The file is
// created on first write.
func NewSessionFileRepository(path string) *SessionFileRepository {
	return &SessionFileRepository{path: path}
}

func (r *SessionFileRepository) load() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return values, nil
}

func (r *SessionFileRepository) save(values map[string]string) error {
	if len(values) == 0 {
		err := os.Remove(r.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *SessionFileRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	values, err := r.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (r *SessionFileRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	values, err := r.load()
	if err != nil {
		return err
	}
	values[key] = value
	return r.save(values)
}

func (r *SessionFileRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	values, err := r.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(values, k)
	}
	return r.save(values)
}

// SessionRedisRepository keeps session values in Redis under a common key prefix.
type SessionRedisRepository struct {
	client *redis.Client
	prefix string
}

// NewSessionRedisRepository creates a repository. Keys are stored as prefix+key.
func NewSessionRedisRepository(client *redis.Client, prefix string) *SessionRedisRepository {
	return &SessionRedisRepository{client: client, prefix: prefix}
}

func (r *SessionRedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		logger.Log.Debugw("session key not found", "key", r.prefix+key)
		return "", false, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to read session key", "key", r.prefix+key, "error", err)
		return "", false, err
	}
	return val, true, nil
}

func (r *SessionRedisRepository) Set(ctx context.Context, key, value string) error {
	err := r.client.Set(ctx, r.prefix+key, value, 0).Err()
	logger.Log.Debugw("session key stored", "key", r.prefix+key, "error", err)
	return err
}

func (r *SessionRedisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}
	err := r.client.Del(ctx, full...).Err()
	logger.Log.Debugw("session keys deleted", "keys", full, "error", err)
	return err
}
