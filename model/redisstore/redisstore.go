/*
Package redisstore stores serialized forests in a redis database, keyed
by name under a configurable prefix. Forests are serialized with the
model/json codec; the dataspec is not stored and must be supplied again
when loading.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hchiam/yggdrasil-decision-forests/dataspec"
	"github.com/hchiam/yggdrasil-decision-forests/model"
	modeljson "github.com/hchiam/yggdrasil-decision-forests/model/json"
	redis "gopkg.in/redis.v5"
)

const generatedNameLength = 20

/*
Store is a forest store backed by a redis DB.
*/
type Store struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a Store persisting
forests under that prefix.
*/
func New(rc *redis.Client, prefix string) *Store {
	return &Store{rc: rc, prefix: prefix}
}

/*
Save takes a name and a forest and stores the serialized forest under
the name, overwriting any previous forest with that name. It returns an
error if the forest cannot be serialized or stored.
*/
func (s *Store) Save(ctx context.Context, name string, f *model.Forest) error {
	data, err := encode(f)
	if err != nil {
		return fmt.Errorf("saving forest %q: %v", name, err)
	}
	if _, err := s.rc.Set(s.keyFor(name), data, 0).Result(); err != nil {
		return fmt.Errorf("saving forest %q in redis: %v", name, err)
	}
	return ctx.Err()
}

/*
Create takes a forest, stores it under a freshly generated random name
and returns the name. It retries name generation until it finds one not
already taken, so it never overwrites an existing forest.
*/
func (s *Store) Create(ctx context.Context, f *model.Forest) (string, error) {
	data, err := encode(f)
	if err != nil {
		return "", fmt.Errorf("creating forest: %v", err)
	}
	var name string
	var ok bool
	for !ok {
		name = randString(generatedNameLength)
		ok, err = s.rc.SetNX(s.keyFor(name), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("creating forest in redis: %v", err)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	return name, nil
}

/*
Load takes a name and the DataSpec the stored forest was built against
and returns the forest stored under that name, nil if no forest with
that name exists, or an error if the store cannot be queried or the
stored data cannot be decoded.
*/
func (s *Store) Load(ctx context.Context, name string, spec *dataspec.DataSpec) (*model.Forest, error) {
	data, err := s.rc.Get(s.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: %v", name, err)
	}
	f, err := modeljson.ReadForest(bytes.NewReader([]byte(data)), spec)
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: decoding: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

/*
Delete takes a name and removes the forest stored under it, if any. It
returns an error if the removal cannot be performed.
*/
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.rc.Del(s.keyFor(name)).Result(); err != nil {
		return fmt.Errorf("deleting forest %q from redis: %v", name, err)
	}
	return ctx.Err()
}

func (s *Store) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

func encode(f *model.Forest) ([]byte, error) {
	var buf bytes.Buffer
	if err := modeljson.WriteForest(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
