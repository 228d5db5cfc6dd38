package graphdb

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func nodeAt(record *neo4j.Record, key string) (neo4j.Node, error) {
	value, ok := record.Get(key)
	if !ok {
		return neo4j.Node{}, fmt.Errorf("could not find return value '%s' in query result", key)
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return neo4j.Node{}, fmt.Errorf("return value '%s' is not a node", key)
	}
	return node, nil
}

func relationshipAt(record *neo4j.Record, key string) (neo4j.Relationship, error) {
	value, ok := record.Get(key)
	if !ok {
		return neo4j.Relationship{}, fmt.Errorf("could not find return value '%s' in query result", key)
	}
	rel, ok := value.(neo4j.Relationship)
	if !ok {
		return neo4j.Relationship{}, fmt.Errorf("return value '%s' is not a relationship", key)
	}
	return rel, nil
}

func stringProp(props map[string]any, key string) string {
	v, _ := props[key].(string)
	return v
}

func boolProp(props map[string]any, key string) bool {
	v, _ := props[key].(bool)
	return v
}

// The driver hands back integers as int64 and floats as float64; numeric
// properties are read leniently since either may have been written.
func floatProp(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func intProp(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}
