// Package txn wraps multi-document MongoDB transactions behind a single
// WithTransaction helper so callers never touch session primitives.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside one MongoDB transaction. The context passed
// to fn carries the session, so every store call made with it joins the
// transaction. The driver retries transient transaction errors and write
// conflicts before giving up, which means fn may run more than once and must
// recompute any read-then-write state on each attempt.
//
// Transactions require a replica set or mongos. On a standalone server the
// transaction machinery fails before any write happens; in that case fn is
// run once without a transaction so development environments still work,
// at the cost of atomicity.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions are unavailable on this
// deployment (standalone server, or an operation illegal inside a txn).
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation
	51:  true, // no such command / illegal operation variants
	263: true, // OperationNotSupportedInTransaction
}

// IsNotSupported reports whether err indicates that multi-document
// transactions are not supported by the connected server. Matching is
// best-effort: known command error codes first, then message keywords,
// since drivers and server versions word these failures differently.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	hasTxnWord := strings.Contains(msg, "transaction") || strings.Contains(msg, "session")
	if !hasTxnWord {
		return false
	}
	return strings.Contains(msg, "replica set") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "session")
}
