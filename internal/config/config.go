package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type MQ struct {
	Host string
	Port int
	User string
	Pass string
}

type StoreCfg struct {
	ID       int
	Operator string
}

type App struct {
	Database DB
	Rabbit   MQ
	Store    StoreCfg
}

// BackendConfigured reports whether a real database was configured. When
// false the whole service runs against in-memory demo data and never makes
// a network call.
func (a App) BackendConfigured() bool { return a.Database.Host != "" }

func (a App) BrokerConfigured() bool { return a.Rabbit.Host != "" }

// Load reads a two-level key/value YAML file (sections: database,
// rabbitmq, store). A missing database section is valid — it selects demo
// mode — so Load only validates what is present.
func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, fmt.Errorf("read config: %w", err)
	}
	a := App{Store: StoreCfg{ID: 1}}
	var section string
	for _, ln := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(ln)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		switch section {
		case "database":
			assignDB(&a.Database, k, v)
		case "rabbitmq":
			assignMQ(&a.Rabbit, k, v)
		case "store":
			assignStore(&a.Store, k, v)
		}
	}
	if a.Store.ID != 1 && a.Store.ID != 2 {
		return App{}, fmt.Errorf("invalid config: store id must be 1 or 2, got %d", a.Store.ID)
	}
	return a, nil
}

func assignDB(d *DB, k, v string) {
	switch k {
	case "host":
		d.Host = v
	case "port":
		d.Port = atoiSafe(v)
	case "user":
		d.User = v
	case "password":
		d.Pass = v
	case "database":
		d.Name = v
	}
}

func assignMQ(m *MQ, k, v string) {
	switch k {
	case "host":
		m.Host = v
	case "port":
		m.Port = atoiSafe(v)
	case "user":
		m.User = v
	case "password":
		m.Pass = v
	}
}

func assignStore(s *StoreCfg, k, v string) {
	switch k {
	case "id":
		s.ID = atoiSafe(v)
	case "operator":
		s.Operator = v
	}
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// FindConfig probes the usual locations.
func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
