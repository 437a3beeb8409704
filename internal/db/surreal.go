package db

import (
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// NewSurreal returns a SurrealDB handle signed in and switched to the given
// namespace and database. The connection is a single long-lived websocket;
// the driver serializes RPC calls over it.
func NewSurreal(url, user, pass, ns, dbName string) (*surrealdb.DB, error) {
	sdb, err := surrealdb.New(url)
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}
	if _, err := sdb.Signin(map[string]any{"user": user, "pass": pass}); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("surrealdb signin: %w", err)
	}
	if _, err := sdb.Use(ns, dbName); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("surrealdb use %s/%s: %w", ns, dbName, err)
	}
	return sdb, nil
}
