package a

import "context"

type store interface {
	Put(ctx context.Context, bucket, key string, data []byte) error
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
}

func bad(ctx context.Context, s store, keys []string) {
	for _, key := range keys {
		_ = s.Put(ctx, "b", key, nil) // want "Put called inside loop"
	}
}

func badDelete(ctx context.Context, s store, keys []string) {
	for _, key := range keys {
		_ = s.Delete(ctx, "b", key) // want "Delete called inside loop"
	}
}

func goodRead(ctx context.Context, s store, keys []string) {
	for _, key := range keys {
		_, _ = s.Get(ctx, "b", key)
	}
}

func goodSingle(ctx context.Context, s store, key string) {
	_ = s.Put(ctx, "b", key, nil)
}
