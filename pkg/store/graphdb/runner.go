// Package graphdb is the graph-native projection of an organization: people,
// clients, briefs and skills as Neo4j nodes joined by collaboration, work and
// skill relationships.
package graphdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Statement is one parameterised Cypher statement.
type Statement struct {
	Query  string
	Params map[string]any
}

// Runner executes Cypher against a graph database.
type Runner interface {
	// Run executes a single query and buffers the full result.
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
	// ExecuteWrite runs all statements inside one write transaction. Any failure
	// rolls the whole batch back and is returned without retrying.
	ExecuteWrite(ctx context.Context, statements []Statement) error
	Verify(ctx context.Context) error
}

type Settings struct {
	URI      string
	Username string
	Password string
	Database string
}

// Executor is the neo4j-go-driver backed Runner.
type Executor struct {
	Driver   neo4j.DriverWithContext
	Database string
}

func NewExecutor(settings Settings) (*Executor, error) {
	if settings.URI == "" {
		return nil, fmt.Errorf("neo4j uri is empty")
	}
	driver, err := neo4j.NewDriverWithContext(settings.URI, neo4j.BasicAuth(settings.Username, settings.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create neo4j driver: %w", err)
	}
	return &Executor{Driver: driver, Database: settings.Database}, nil
}

func (e *Executor) Verify(ctx context.Context) error {
	return e.Driver.VerifyConnectivity(ctx)
}

func (e *Executor) Close(ctx context.Context) error {
	return e.Driver.Close(ctx)
}

func (e *Executor) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		e.Driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.Database),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing neo4j query: %w", err)
	}
	return result, nil
}

// ExecuteWrite uses an explicit transaction so a failed batch is rolled back
// and reported once instead of being retried by the driver.
func (e *Executor) ExecuteWrite(ctx context.Context, statements []Statement) error {
	session := e.Driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: e.Database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return fmt.Errorf("error beginning neo4j write transaction: %w", err)
	}
	if err := commitAll(ctx, tx, statements); err != nil {
		return fmt.Errorf("error executing neo4j write transaction: %w", err)
	}
	return nil
}

// writeTx is the part of neo4j.ExplicitTransaction a batch write needs.
type writeTx interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

func commitAll(ctx context.Context, tx writeTx, statements []Statement) error {
	for i, st := range statements {
		result, err := tx.Run(ctx, st.Query, st.Params)
		if err == nil {
			_, err = result.Consume(ctx)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return tx.Commit(ctx)
}
