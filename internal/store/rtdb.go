// README: Tree implementation backed by Firebase Realtime Database.
package store

import (
	"context"

	"firebase.google.com/go/v4/db"
)

type RTDB struct {
	client *db.Client
}

func NewRTDB(client *db.Client) *RTDB {
	return &RTDB{client: client}
}

func (s *RTDB) Get(ctx context.Context, path string, v interface{}) error {
	return s.client.NewRef(path).Get(ctx, v)
}

func (s *RTDB) Set(ctx context.Context, path string, v interface{}) error {
	return s.client.NewRef(path).Set(ctx, v)
}

func (s *RTDB) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return s.client.NewRef(path).Update(ctx, fields)
}

func (s *RTDB) Delete(ctx context.Context, path string) error {
	return s.client.NewRef(path).Delete(ctx)
}

func (s *RTDB) Push(ctx context.Context, path string, v interface{}) (string, error) {
	ref, err := s.client.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", err
	}
	return ref.Key, nil
}

func (s *RTDB) Transaction(ctx context.Context, path string, fn UpdateFn) error {
	return s.client.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (interface{}, error) {
		return fn(node)
	})
}
