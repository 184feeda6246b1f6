package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnFunc is the unit of work executed inside a transaction. The context it
// receives is a mongo session context; repositories must pass it through to
// every read and write so that all of them join the same transaction.
type TxnFunc func(ctx context.Context) error

// TxnRunner executes a function inside a single multi-document transaction.
// On error the whole transaction aborts and no partial write is visible.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn TxnFunc) error
}

type mongoTxnRunner struct {
	client *mongo.Client
}

// NewTxnRunner builds a TxnRunner backed by mongo sessions.
func NewTxnRunner(client *mongo.Client) TxnRunner {
	return &mongoTxnRunner{client: client}
}

func (r *mongoTxnRunner) WithTransaction(ctx context.Context, fn TxnFunc) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
