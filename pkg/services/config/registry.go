// Package config reads connection profiles from an ini file and report
// settings through viper.
package config

import (
	"context"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"github.com/de-tools/agency-atlas/pkg/store/postgres"
	"gopkg.in/ini.v1"
)

// Profile holds the connections of one environment. Graph is nil when the
// profile has no neo4j_uri, which runs the service in relational-only mode.
type Profile struct {
	Name     string
	Postgres postgres.Settings
	Graph    *graphdb.Settings
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (*Profile, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	dsn := section.Key("postgres_dsn").String()
	if dsn == "" {
		return nil, fmt.Errorf("profile %s: postgres_dsn is required", profile)
	}

	p := &Profile{
		Name: profile,
		Postgres: postgres.Settings{
			DSN:             dsn,
			MaxOpenConns:    section.Key("postgres_max_open_conns").MustInt(10),
			MaxIdleConns:    section.Key("postgres_max_idle_conns").MustInt(5),
			ConnMaxLifetime: section.Key("postgres_conn_max_lifetime").MustDuration(0),
			Bootstrap:       section.Key("postgres_bootstrap").MustBool(false),
		},
	}

	if uri := section.Key("neo4j_uri").String(); uri != "" {
		p.Graph = &graphdb.Settings{
			URI:      uri,
			Username: section.Key("neo4j_username").String(),
			Password: section.Key("neo4j_password").String(),
			Database: section.Key("neo4j_database").MustString("neo4j"),
		}
	}
	return p, nil
}
